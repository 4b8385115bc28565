package board

import (
	"fmt"
	"time"
)

// Urgency grades how close the launch is.
type Urgency int

const (
	UrgencyNormal   Urgency = iota
	UrgencyWarning          // a week or less to go
	UrgencyCritical         // a day or less to go
	UrgencyLaunched
)

func (u Urgency) String() string {
	switch u {
	case UrgencyNormal:
		return "normal"
	case UrgencyWarning:
		return "warning"
	case UrgencyCritical:
		return "critical"
	case UrgencyLaunched:
		return "launched"
	}
	return fmt.Sprintf("Urgency(%d)", int(u))
}

// LaunchedText is shown once the launch time has passed.
const LaunchedText = "🚀 LAUNCHED!"

// CountdownView is the formatted time left until launch.
type CountdownView struct {
	Text    string
	Days    int
	Urgency Urgency
}

// Launched reports whether the launch time has passed.
func (v CountdownView) Launched() bool {
	return v.Urgency == UrgencyLaunched
}

// Countdown formats the time from now until launch. More than a day out
// it shows days and hours, exactly one day out it adds minutes, and on the
// final day it counts hours, minutes and seconds.
func Countdown(now, launch time.Time) CountdownView {
	distance := launch.Sub(now)
	if distance <= 0 {
		return CountdownView{Text: LaunchedText, Urgency: UrgencyLaunched}
	}

	days := int(distance / (24 * time.Hour))
	hours := int(distance % (24 * time.Hour) / time.Hour)
	minutes := int(distance % time.Hour / time.Minute)
	seconds := int(distance % time.Minute / time.Second)

	view := CountdownView{Days: days, Urgency: UrgencyNormal}
	switch {
	case days > 1:
		view.Text = fmt.Sprintf("%d days, %dh", days, hours)
	case days == 1:
		view.Text = fmt.Sprintf("1 day, %dh %dm", hours, minutes)
	case hours > 0:
		view.Text = fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	case minutes > 0:
		view.Text = fmt.Sprintf("%dm %ds", minutes, seconds)
	default:
		view.Text = fmt.Sprintf("%ds", seconds)
	}

	switch {
	case days <= 1:
		view.Urgency = UrgencyCritical
	case days <= 7:
		view.Urgency = UrgencyWarning
	}
	return view
}
