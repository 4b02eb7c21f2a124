package templates

// Defaults returns the built-in catalog.
func Defaults() []Template {
	out := make([]Template, len(builtIn))
	for i, t := range builtIn {
		t.Tags = append([]string(nil), t.Tags...)
		t.Components = append([]string(nil), t.Components...)
		t.Version = "1.0"
		t.BuiltIn = true
		out[i] = t
	}
	return out
}

var builtIn = []Template{
	{
		ID:         "hcm/shift-swap-bid",
		Title:      "Shift Swap/Bid",
		Summary:    "Restaurant workers can swap shifts or bid on open shifts",
		Tags:       []string{"Scheduling", "HCM", "Restaurant"},
		Components: []string{"Tabs", "Table", "Button", "Badge", "DatePicker"},
		Prompt:     "Create a shift management page with tabs for 'My Shifts', 'Available Shifts', and 'Swap Requests'. Include a table showing shift dates, times, positions, and status badges. Add primary buttons for 'Request Swap' and 'Bid on Shift'.",
	},
	{
		ID:         "finance/expense-report",
		Title:      "Expense Report",
		Summary:    "Submit and track business expense reports with receipts",
		Tags:       []string{"Finance", "Expenses", "Travel"},
		Components: []string{"Form", "Table", "Button", "Field", "DatePicker", "Badge"},
		Prompt:     "Create an expense report form with header showing report status and total amount. Include a table of expense line items with columns for Date, Description, Category, Amount, and Receipt status. Add fields for business purpose and submission date. Include primary 'Submit' and secondary 'Save Draft' buttons.",
	},
	{
		ID:         "finance/project-billing-review",
		Title:      "Project Billing Review",
		Summary:    "Review and approve project billing rates and time allocations",
		Tags:       []string{"Finance", "Billing", "Projects", "Time Tracking", "Approval"},
		Components: []string{"Table", "Form", "Button", "Badge", "DatePicker", "Field"},
		Prompt:     "Create a project billing review page with a header showing project details and billing period. Include a table of time entries with columns for Date, Employee, Hours, Rate, Amount, and Approval Status badges. Add filter controls for date range, employee, and billing status. Include an approval section with comments field and primary 'Approve All' and 'Reject Selected' buttons. Show summary totals for billable hours and amounts.",
	},
	{
		ID:         "finance/mileage-expense",
		Title:      "Mileage Expense",
		Summary:    "Track and submit mileage expenses for business travel reimbursement",
		Tags:       []string{"Finance", "Expenses", "Mileage", "Travel", "Reimbursement"},
		Components: []string{"Form", "Table", "Button", "DatePicker", "Field", "Map"},
		Prompt:     "Create a mileage expense tracking page with a form for logging trips including start/end locations, date, purpose, and odometer readings. Show calculated mileage and reimbursement amount based on current rates. Include a table of submitted mileage entries with columns for Date, Route, Miles, Rate, Amount, and Status badges. Add a summary card showing total monthly mileage and reimbursement amounts. Include primary 'Submit Expense' and secondary 'Save Draft' buttons.",
	},
	{
		ID:         "hr-engagement/charitable-donations",
		Title:      "Charitable Donations",
		Summary:    "Manage employee charitable giving campaigns and donation tracking",
		Tags:       []string{"HR", "Engagement", "Charity", "Donations", "Campaigns"},
		Components: []string{"Card", "Form", "Table", "Button", "Badge", "ProgressBar"},
		Prompt:     "Create a charitable donations page with a header card showing current campaign details, total raised amount, and progress bar toward goal. Include a donation form with dropdown for charity selection, amount field, and payment method options. Add a table showing recent donations with columns for Date, Employee, Charity, Amount, and Status badges. Include primary 'Donate Now' and secondary 'View All Campaigns' buttons.",
	},
	{
		ID:         "hr-engagement/worker-badges",
		Title:      "Worker Badges",
		Summary:    "Award and claim digital achievement badges for employee recognition",
		Tags:       []string{"HR", "Badges", "Recognition", "Achievement", "Gamification"},
		Components: []string{"Card", "Badge", "Button", "Table", "Modal", "Avatar"},
		Prompt:     "Create a worker badges page with a header section showing the employee's badge collection using colorful badge components. Include tabs for 'My Badges', 'Available Badges', and 'Badge Claims'. Show a grid of available badges with descriptions, criteria, and 'Claim Badge' buttons. Add a recent activity table with columns for Date, Badge Name, Awarded To, and Status. Include a badge detail modal that opens when clicking on badges, showing criteria and progress.",
	},
	{
		ID:         "payroll-tax/sui-tax-rates",
		Title:      "SUI Tax Rates",
		Summary:    "Manage State Unemployment Insurance tax rates by location and period",
		Tags:       []string{"Payroll", "Tax", "SUI", "Rates", "Compliance"},
		Components: []string{"Table", "Form", "Button", "DatePicker", "Field", "Select"},
		Prompt:     "Create a SUI tax rates management page with a header showing current tax period and jurisdiction. Include a searchable table with columns for State, Tax Rate, Wage Base, Effective Date, End Date, and Status badges. Add a form for updating tax rates with fields for state selection, rate percentage, wage base amount, and effective date range. Include filter controls for state, status, and date range. Provide primary 'Update Rates' and secondary 'Export Data' buttons.",
	},
	{
		ID:         "health-safety/vaccine-management",
		Title:      "Vaccine Management",
		Summary:    "Upload vaccine proof documents and track vaccination status for compliance",
		Tags:       []string{"Health", "Safety", "Vaccine", "Compliance", "Documents"},
		Components: []string{"Form", "Upload", "Table", "Badge", "Button", "Card"},
		Prompt:     "Create a vaccine management page with a status card showing current vaccination compliance status and requirements. Include an upload form for vaccine documents with fields for vaccine type, date administered, healthcare provider, and document upload. Add a table showing vaccination history with columns for Vaccine Type, Date, Provider, Document Status, and Approval badges. Include document preview functionality and primary 'Submit for Review' and secondary 'Save Draft' buttons.",
	},
	{
		ID:         "esg/commuting-emissions-survey",
		Title:      "Commuting Emissions Survey",
		Summary:    "Track employee commuting methods to calculate carbon footprint and ESG metrics",
		Tags:       []string{"ESG", "Environment", "Commuting", "Survey", "Sustainability"},
		Components: []string{"Form", "Chart", "Button", "Select", "Card", "ProgressBar"},
		Prompt:     "Create a commuting survey page with a form for employees to log their daily commute methods including transportation type, distance, frequency, and alternative options. Show environmental impact charts displaying CO2 emissions calculations and reduction potential. Include a sustainability goals card with progress bars toward carbon reduction targets. Add commute method comparison charts and primary 'Submit Survey' and secondary 'View Impact Report' buttons.",
	},
	{
		ID:         "orchestration/request-credit-card",
		Title:      "Request Credit Card",
		Summary:    "Automated corporate credit card request workflow with approval routing",
		Tags:       []string{"Orchestration", "Credit Card", "Requests", "Approval", "Finance"},
		Components: []string{"Form", "Table", "Button", "Field", "Badge", "Stepper"},
		Prompt:     "Create a credit card request page with a form for business justification, spending limits, card type selection, and manager approval routing. Show a workflow stepper displaying approval stages from request to card delivery. Include a table of existing requests with columns for Date, Card Type, Limit, Approver, and Status badges. Add automated spending policy checks and primary 'Submit Request' and secondary 'Save Draft' buttons with Orchestrate workflow integration.",
	},
	{
		ID:         "comp-rewards/create-spot-bonus",
		Title:      "Create Spot Bonus",
		Summary:    "Award immediate spot bonuses for exceptional performance and achievements",
		Tags:       []string{"Compensation", "Rewards", "Bonus", "Recognition", "Performance"},
		Components: []string{"Form", "Table", "Button", "Field", "Badge", "Avatar"},
		Prompt:     "Create a spot bonus award page with a form for selecting employees, bonus amount, reason for award, and approval routing. Include fields for business justification, effective date, and budget allocation. Show a table of recent spot bonuses with columns for Employee, Amount, Reason, Date, Approver, and Status badges. Add validation for bonus limits and approval requirements. Include primary 'Award Bonus' and secondary 'Save Draft' buttons with real-time budget tracking.",
	},
	{
		ID:         "learning-events/badge-scanning",
		Title:      "Badge Scanning",
		Summary:    "Scan employee badges to track attendance at learning events and training sessions",
		Tags:       []string{"Learning", "Events", "Scanning", "Attendance", "Training"},
		Components: []string{"Scanner", "Card", "Table", "Badge", "Button"},
		Prompt:     "Create a badge scanning page with a live scanner interface for reading employee badges at learning events. Include event details card showing session information, location, and expected attendees. Show a real-time attendance table with columns for Employee, Badge ID, Scan Time, Status, and Attendance badges. Add manual entry options for badge failures and attendance corrections. Include primary 'Start Scanning' and secondary 'Manual Entry' buttons with attendance reporting and export features.",
	},
	{
		ID:         "time-absence/timesheet-assistant",
		Title:      "Timesheet Assistant",
		Summary:    "Timesheet completion assistant with smart suggestions and automation",
		Tags:       []string{"Time", "Absence", "Assistant", "Automation"},
		Components: []string{"Table", "Chart", "Button", "Badge", "Banner"},
		Prompt:     "Create an intelligent timesheet assistant with automated time entry suggestions based on calendar events and historical patterns. Include a weekly timesheet grid with smart auto-completion and project code recommendations. Show time allocation charts and overtime alerts. Add a table of recent time entries with columns for Date, Project, Hours, Type, Status, and Approval badges. Include primary 'Submit Timesheet' and secondary 'Save Draft' buttons.",
	},
}
