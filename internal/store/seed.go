package store

import "github.com/baiirun/launchboard/internal/model"

// SampleTasks returns the curated four-week launch plan used to seed an
// empty store. Every call returns fresh copies without ids or timestamps.
func SampleTasks() []model.Task {
	tasks := []model.Task{
		{
			Title:       "Budget Approval & Contract Finalization",
			Description: "CRITICAL: Secure budget approval for $297/month Instantly.ai account and finalize developer contract. Nothing else can proceed without this.",
			Status:      model.StatusWeek1,
			Priority:    model.PriorityHigh,
			Assignee:    "Barry",
			Tags:        []string{"budget", "legal", "blocker"},
			Week:        1,
			Order:       1,
			DueDate:     due("2024-08-15T17:00:00Z"),
		},
		{
			Title:       "Instantly.ai Platform Setup",
			Description: "Set up Instantly.ai account, configure email platform with proper authentication, domain and DNS records. Core email infrastructure.",
			Status:      model.StatusWeek1,
			Priority:    model.PriorityHigh,
			Assignee:    "Developer",
			Tags:        []string{"infrastructure", "email", "setup"},
			Week:        1,
			Order:       2,
			DueDate:     due("2024-08-16T17:00:00Z"),
		},
		{
			Title:       "ServiceMinder API Access & Documentation",
			Description: "Ensure API access and documentation availability. Gather API credentials and endpoints. Essential for CRM integration.",
			Status:      model.StatusWeek1,
			Priority:    model.PriorityHigh,
			Assignee:    "Barry",
			Tags:        []string{"api", "crm", "access"},
			Week:        1,
			Order:       3,
			DueDate:     due("2024-08-15T17:00:00Z"),
		},
		{
			Title:       "N8N Workflow Platform Setup",
			Description: "Configure N8N automation platform and create initial workflow structure. Foundation for all automation processes.",
			Status:      model.StatusWeek1,
			Priority:    model.PriorityHigh,
			Assignee:    "Developer",
			Tags:        []string{"automation", "n8n", "infrastructure"},
			Week:        1,
			Order:       4,
			DueDate:     due("2024-08-16T17:00:00Z"),
		},
		{
			Title:       "Pilot Territory Selection",
			Description: "Choose 1-2 franchise territories for initial deployment and identify target business verticals in selected areas.",
			Status:      model.StatusWeek1,
			Priority:    model.PriorityHigh,
			Assignee:    "Barry",
			Tags:        []string{"strategy", "territories", "targeting"},
			Week:        1,
			Order:       5,
			DueDate:     due("2024-08-16T17:00:00Z"),
		},
		{
			Title:       "Basic Web Scraping Workflow (MVP)",
			Description: "Create N8N workflows for property management company data collection. Test basic scraping functionality and implement data validation.",
			Status:      model.StatusWeek1,
			Priority:    model.PriorityMedium,
			Assignee:    "Developer",
			Tags:        []string{"scraping", "data", "validation"},
			Week:        1,
			Order:       6,
			DueDate:     due("2024-08-16T17:00:00Z"),
		},
		{
			Title:       "ServiceMinder API Integration",
			Description: "Build connection between lead generation system and CRM. Test data flow and synchronization with comprehensive error handling.",
			Status:      model.StatusWeek2,
			Priority:    model.PriorityHigh,
			Assignee:    "Developer",
			Tags:        []string{"api", "integration", "crm"},
			Week:        2,
			Order:       1,
			DueDate:     due("2024-08-19T17:00:00Z"),
		},
		{
			Title:       "Email Campaign Templates & Automation",
			Description: "Design email campaign templates, get Barry's approval, and build automated email sequence workflows with personalization.",
			Status:      model.StatusWeek2,
			Priority:    model.PriorityHigh,
			Assignee:    "Developer",
			Tags:        []string{"email", "templates", "automation"},
			Week:        2,
			Order:       2,
			DueDate:     due("2024-08-20T17:00:00Z"),
		},
		{
			Title:       "Advanced Web Scraping & Data Collection",
			Description: "Expand scraping to cover all target business verticals, add support for multiple data sources, and implement contact enrichment.",
			Status:      model.StatusWeek2,
			Priority:    model.PriorityHigh,
			Assignee:    "Developer",
			Tags:        []string{"scraping", "data", "enrichment"},
			Week:        2,
			Order:       3,
			DueDate:     due("2024-08-21T17:00:00Z"),
		},
		{
			Title:       "Lead Scoring & Qualification System",
			Description: "Create automated lead qualification system with scoring criteria and thresholds. Implement duplicate detection and data validation.",
			Status:      model.StatusWeek2,
			Priority:    model.PriorityHigh,
			Assignee:    "Developer",
			Tags:        []string{"scoring", "qualification", "automation"},
			Week:        2,
			Order:       4,
			DueDate:     due("2024-08-22T17:00:00Z"),
		},
		{
			Title:       "Response Tracking & Management System",
			Description: "Build system to track and categorize email responses with automated response handling and basic reporting dashboard.",
			Status:      model.StatusWeek2,
			Priority:    model.PriorityMedium,
			Assignee:    "Developer",
			Tags:        []string{"tracking", "responses", "reporting"},
			Week:        2,
			Order:       5,
			DueDate:     due("2024-08-23T17:00:00Z"),
		},
		{
			Title:       "End-to-End System Testing (Phase 1)",
			Description: "Complete system validation and bug fixes. Test full workflow from scraping to CRM integration with basic performance testing.",
			Status:      model.StatusWeek2,
			Priority:    model.PriorityHigh,
			Assignee:    "Developer",
			Tags:        []string{"testing", "validation", "workflow"},
			Week:        2,
			Order:       6,
			DueDate:     due("2024-08-23T17:00:00Z"),
		},
		{
			Title:       "Multi-Step Email Drip Campaigns",
			Description: "Create sophisticated email sequence workflows with conditional logic and branching based on prospect behavior and responses.",
			Status:      model.StatusWeek3,
			Priority:    model.PriorityHigh,
			Assignee:    "Developer",
			Tags:        []string{"email", "automation", "sequences"},
			Week:        3,
			Order:       1,
			DueDate:     due("2024-08-26T17:00:00Z"),
		},
		{
			Title:       "Performance Optimization & Security",
			Description: "Optimize system performance, implement caching, add security measures, access controls, and data encryption for production readiness.",
			Status:      model.StatusWeek3,
			Priority:    model.PriorityHigh,
			Assignee:    "Developer",
			Tags:        []string{"performance", "security", "optimization"},
			Week:        3,
			Order:       2,
			DueDate:     due("2024-08-27T17:00:00Z"),
		},
		{
			Title:       "Advanced Reporting Dashboard",
			Description: "Create comprehensive performance monitoring dashboard with key metrics, KPIs, and real-time analytics for business intelligence.",
			Status:      model.StatusWeek3,
			Priority:    model.PriorityMedium,
			Assignee:    "Developer",
			Tags:        []string{"reporting", "dashboard", "analytics"},
			Week:        3,
			Order:       3,
			DueDate:     due("2024-08-28T17:00:00Z"),
		},
		{
			Title:       "Data Quality & Deliverability Testing",
			Description: "Verify 90%+ data accuracy and 95%+ email deliverability. Test spam filters, inbox placement, and contact validation systems.",
			Status:      model.StatusWeek3,
			Priority:    model.PriorityHigh,
			Assignee:    "Developer",
			Tags:        []string{"quality", "deliverability", "validation"},
			Week:        3,
			Order:       4,
			DueDate:     due("2024-08-29T17:00:00Z"),
		},
		{
			Title:       "Integration & Load Testing",
			Description: "Test all system integrations under expected load. Validate system can handle 1,000+ contacts per month with <5 second response times.",
			Status:      model.StatusWeek3,
			Priority:    model.PriorityHigh,
			Assignee:    "Developer",
			Tags:        []string{"testing", "integration", "performance"},
			Week:        3,
			Order:       5,
			DueDate:     due("2024-08-30T17:00:00Z"),
		},
		{
			Title:       "User Documentation & Training Materials",
			Description: "Complete all user guides, troubleshooting documentation, and create training materials for franchise owners.",
			Status:      model.StatusWeek3,
			Priority:    model.PriorityMedium,
			Assignee:    "Developer",
			Tags:        []string{"documentation", "training", "guides"},
			Week:        3,
			Order:       6,
			DueDate:     due("2024-08-30T17:00:00Z"),
		},
		{
			Title:       "User Acceptance Testing & Training",
			Description: "Coordinate UAT with pilot franchise owner, gather feedback, and provide comprehensive system training with support materials.",
			Status:      model.StatusWeek4,
			Priority:    model.PriorityHigh,
			Assignee:    "Barry",
			Tags:        []string{"uat", "training", "feedback"},
			Week:        4,
			Order:       1,
			DueDate:     due("2024-09-02T17:00:00Z"),
		},
		{
			Title:       "Production Environment Deployment",
			Description: "Deploy all components to production servers, set up monitoring dashboards, and configure performance tracking systems.",
			Status:      model.StatusWeek4,
			Priority:    model.PriorityHigh,
			Assignee:    "Developer",
			Tags:        []string{"deployment", "production", "monitoring"},
			Week:        4,
			Order:       2,
			DueDate:     due("2024-09-03T17:00:00Z"),
		},
		{
			Title:       "Final System Validation & Testing",
			Description: "Complete comprehensive pre-launch system validation, run full end-to-end testing, and verify all success criteria are met.",
			Status:      model.StatusWeek4,
			Priority:    model.PriorityHigh,
			Assignee:    "Developer",
			Tags:        []string{"validation", "testing", "criteria"},
			Week:        4,
			Order:       3,
			DueDate:     due("2024-09-05T17:00:00Z"),
		},
		{
			Title:       "Backup & Recovery Procedures",
			Description: "Test backup and rollback procedures, ensure data recovery capabilities, and verify emergency response protocols.",
			Status:      model.StatusWeek4,
			Priority:    model.PriorityMedium,
			Assignee:    "Developer",
			Tags:        []string{"backup", "recovery", "emergency"},
			Week:        4,
			Order:       4,
			DueDate:     due("2024-09-04T17:00:00Z"),
		},
		{
			Title:       "Launch Day Procedures Rehearsal",
			Description: "Practice launch day workflows, test emergency procedures, and ensure all team members understand their roles and responsibilities.",
			Status:      model.StatusWeek4,
			Priority:    model.PriorityHigh,
			Assignee:    "Barry & Developer",
			Tags:        []string{"rehearsal", "procedures", "preparation"},
			Week:        4,
			Order:       5,
			DueDate:     due("2024-09-06T17:00:00Z"),
		},
		{
			Title:       "Go/No-Go Decision Meeting",
			Description: "Final decision meeting on launch readiness. Review all completion criteria, assess risks, and make the official launch decision.",
			Status:      model.StatusWeek4,
			Priority:    model.PriorityHigh,
			Assignee:    "Barry",
			Tags:        []string{"decision", "criteria", "launch"},
			Week:        4,
			Order:       6,
			DueDate:     due("2024-09-06T17:00:00Z"),
		},
		{
			Title:       "🚀 LAUNCH DAY: Final System Checks",
			Description: "8:00 AM - Complete final pre-launch validation and verify all systems are operational. Last chance to catch any issues.",
			Status:      model.StatusCompleted,
			Priority:    model.PriorityHigh,
			Assignee:    "Developer",
			Tags:        []string{"launch", "validation", "critical"},
			Week:        5,
			Order:       1,
			DueDate:     due("2024-09-10T08:00:00Z"),
		},
		{
			Title:       "🚀 LAUNCH DAY: System Launch Execution",
			Description: "9:00 AM - Execute system launch for pilot territory and activate all automated workflows. THE BIG MOMENT!",
			Status:      model.StatusCompleted,
			Priority:    model.PriorityHigh,
			Assignee:    "Developer",
			Tags:        []string{"launch", "execution", "critical"},
			Week:        5,
			Order:       2,
			DueDate:     due("2024-09-10T09:00:00Z"),
		},
		{
			Title:       "🚀 LAUNCH DAY: Real-Time Monitoring",
			Description: "11:00 AM - Monitor system performance during launch day and address any issues immediately. All hands on deck.",
			Status:      model.StatusCompleted,
			Priority:    model.PriorityHigh,
			Assignee:    "Developer",
			Tags:        []string{"launch", "monitoring", "support"},
			Week:        5,
			Order:       3,
			DueDate:     due("2024-09-10T11:00:00Z"),
		},
		{
			Title:       "🚀 LAUNCH DAY: Performance Review",
			Description: "3:00 PM - Review initial performance metrics and assess system stability and functionality with stakeholders.",
			Status:      model.StatusCompleted,
			Priority:    model.PriorityHigh,
			Assignee:    "Barry & Developer",
			Tags:        []string{"launch", "review", "metrics"},
			Week:        5,
			Order:       4,
			DueDate:     due("2024-09-10T15:00:00Z"),
		},
		{
			Title:       "🚀 LAUNCH DAY: Success Confirmation",
			Description: "5:00 PM - Confirm successful launch, document lessons learned, and plan next steps for scaling the system.",
			Status:      model.StatusCompleted,
			Priority:    model.PriorityHigh,
			Assignee:    "Barry",
			Tags:        []string{"launch", "success", "planning"},
			Week:        5,
			Order:       5,
			DueDate:     due("2024-09-10T17:00:00Z"),
		},
		{
			Title:       "Risk Mitigation & Backup Planning",
			Description: "Identify backup developer, research alternative email platforms, document manual processes, and prepare emergency contacts.",
			Status:      model.StatusBacklog,
			Priority:    model.PriorityMedium,
			Assignee:    "Barry",
			Tags:        []string{"risk", "backup", "planning"},
			Week:        0,
			Order:       1,
			DueDate:     due("2024-08-20T17:00:00Z"),
		},
		{
			Title:       "Daily Standup Meeting Setup",
			Description: "Establish daily 9:00 AM standup meetings (15 min) to track progress, identify blockers, and coordinate team efforts.",
			Status:      model.StatusBacklog,
			Priority:    model.PriorityLow,
			Assignee:    "Barry",
			Tags:        []string{"meetings", "communication", "process"},
			Week:        0,
			Order:       2,
			DueDate:     due("2024-08-15T17:00:00Z"),
		},
		{
			Title:       "Success Criteria Validation Framework",
			Description: "Create framework to validate: 1000+ contacts/month, 95%+ deliverability, 90%+ data accuracy, 99%+ uptime, <5s response times.",
			Status:      model.StatusBacklog,
			Priority:    model.PriorityMedium,
			Assignee:    "Developer",
			Tags:        []string{"criteria", "validation", "metrics"},
			Week:        0,
			Order:       3,
			DueDate:     due("2024-08-25T17:00:00Z"),
		},
	}
	for i := range tasks {
		tasks[i].Normalize()
	}
	return tasks
}

func due(s string) *model.Millis {
	ms, err := model.ParseMillis(s)
	if err != nil {
		panic(err)
	}
	return &ms
}
