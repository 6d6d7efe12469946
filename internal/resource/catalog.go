package resource

import (
	"dicel-erp/internal/errs"
	"dicel-erp/internal/hr"
	"dicel-erp/internal/money"

	"github.com/samber/lo"
)

func text(field, name string) Column { return Column{Field: field, Name: name, Kind: Text} }
func enum(field, name string, values ...string) Column {
	return Column{Field: field, Name: name, Kind: Enum, Values: values}
}
func amount(field, name string) Column  { return Column{Field: field, Name: name, Kind: Decimal} }
func integer(field, name string) Column { return Column{Field: field, Name: name, Kind: Int} }
func date(field, name string) Column    { return Column{Field: field, Name: name, Kind: Date} }
func clock(field, name string) Column   { return Column{Field: field, Name: name, Kind: Time} }
func flag(field, name string) Column    { return Column{Field: field, Name: name, Kind: Bool} }
func ref(field, name string) Column     { return Column{Field: field, Name: name, Kind: Ref} }

func required(c Column) Column   { c.Required = true; return c }
func readOnly(c Column) Column   { c.ReadOnly = true; return c }
func createOnly(c Column) Column { c.CreateOnly = true; return c }

var (
	employeeBrief   = []Attr{{"id", "id"}, {"firstName", "first_name"}, {"lastName", "last_name"}, {"employeeCode", "employee_code"}}
	employeeDetail  = append(employeeBrief[:len(employeeBrief):len(employeeBrief)], Attr{"email", "email"}, Attr{"position", "position"})
	departmentBrief = []Attr{{"id", "id"}, {"name", "name"}, {"code", "code"}}
	projectBrief    = []Attr{{"id", "id"}, {"name", "name"}, {"code", "code"}}
	vendorBrief     = []Attr{{"id", "id"}, {"name", "name"}}
	vendorDetail    = []Attr{{"id", "id"}, {"name", "name"}, {"email", "email"}, {"phone", "phone"}, {"paymentTerms", "payment_terms"}}
	customerBrief   = []Attr{{"id", "id"}, {"name", "name"}, {"email", "email"}}
	customerDetail  = []Attr{{"id", "id"}, {"name", "name"}, {"email", "email"}, {"phone", "phone"}, {"company", "company"}, {"address", "address"}}
)

const (
	activeEmployees = "(SELECT COUNT(*) FROM employees e WHERE e.department_id = t.id AND e.is_active)"
	activeTasks     = "(SELECT COUNT(*) FROM tasks k WHERE k.project_id = t.id AND k.is_active)"
	enrolled        = "(SELECT COUNT(*) FROM training_enrollments n WHERE n.course_id = t.id AND n.is_active)"
	openTasks       = "(SELECT COUNT(*) FROM tasks k WHERE k.project_id = t.id AND k.is_active AND k.status <> 'Done')"
)

var (
	Accounts = &Entity{
		Name:  "Account",
		Path:  "accounts",
		Table: "accounts",
		Columns: []Column{
			required(text("accountCode", "account_code")),
			required(text("name", "name")),
			required(enum("type", "type", "Asset", "Liability", "Equity", "Revenue", "Expense")),
			text("category", "category"),
			text("description", "description"),
			createOnly(amount("currentBalance", "current_balance")),
			text("currency", "currency"),
		},
		Search:  []string{"name", "accountCode", "description"},
		Filters: map[string]string{"type": "type", "category": "category"},
		Order:   []Order{{Field: "accountCode"}},
		HasMany: []HasMany{{
			Field:      "transactions",
			Table:      "transactions",
			ForeignKey: "account_id",
			Attrs:      []Attr{{"id", "id"}, {"transactionDate", "transaction_date"}, {"description", "description"}, {"reference", "reference"}, {"debit", "debit"}, {"credit", "credit"}},
			Order:      "transaction_date DESC, created_at DESC",
			Limit:      10,
		}},
		Owner:         "created_by",
		Stats:         Stats{GroupBy: []string{"type"}, Sums: []string{"currentBalance"}},
		UniqueMessage: "Account code already exists",
	}

	Transactions = &Entity{
		Name:  "Transaction",
		Path:  "transactions",
		Table: "transactions",
		Columns: []Column{
			required(createOnly(ref("accountId", "account_id"))),
			required(date("transactionDate", "transaction_date")),
			required(text("description", "description")),
			text("reference", "reference"),
			createOnly(amount("debit", "debit")),
			createOnly(amount("credit", "credit")),
			enum("type", "type", "Journal", "Payment", "Receipt", "Adjustment"),
		},
		Search:   []string{"description", "reference"},
		Filters:  map[string]string{"type": "type", "accountId": "accountId"},
		Order:    []Order{{Field: "transactionDate", Desc: true}},
		Includes: []Include{{Field: "account", Table: "accounts", ForeignKey: "account_id", Attrs: []Attr{{"id", "id"}, {"name", "name"}, {"accountCode", "account_code"}}}},
		Owner:    "created_by",
		Stats:    Stats{GroupBy: []string{"type"}, Sums: []string{"debit", "credit"}},
		BeforeCreate: func(values map[string]any) error {
			debit, _ := values["debit"].(string)
			credit, _ := values["credit"].(string)
			total, err := money.Sum(debit, credit)
			if err != nil {
				return errs.Validation(err.Error())
			}
			if total.IsZero() {
				return errs.Validation("debit or credit must be greater than zero")
			}
			return nil
		},
	}

	Customers = &Entity{
		Name:  "Customer",
		Path:  "customers",
		Table: "customers",
		Columns: []Column{
			required(text("name", "name")),
			text("email", "email"),
			text("phone", "phone"),
			text("company", "company"),
			text("address", "address"),
			enum("status", "status", "Active", "Inactive", "Prospect"),
			amount("creditLimit", "credit_limit"),
		},
		Search:  []string{"name", "email", "company"},
		Filters: map[string]string{"status": "status"},
		Order:   []Order{{Field: "name"}},
		Owner:   "created_by",
		Stats:   Stats{GroupBy: []string{"status"}, Sums: []string{"creditLimit"}},
	}

	Vendors = &Entity{
		Name:  "Vendor",
		Path:  "vendors",
		Table: "vendors",
		Columns: []Column{
			required(text("name", "name")),
			text("email", "email"),
			text("phone", "phone"),
			text("address", "address"),
			text("category", "category"),
			enum("status", "status", "Active", "Inactive", "Blocked"),
			text("paymentTerms", "payment_terms"),
		},
		Search:  []string{"name", "email"},
		Filters: map[string]string{"status": "status", "category": "category"},
		Order:   []Order{{Field: "name"}},
		Owner:   "created_by",
		Stats:   Stats{GroupBy: []string{"status", "category"}},
	}

	Invoices = &Entity{
		Name:  "Invoice",
		Path:  "invoices",
		Table: "invoices",
		Columns: []Column{
			required(text("invoiceNumber", "invoice_number")),
			required(ref("customerId", "customer_id")),
			required(date("issueDate", "issue_date")),
			date("dueDate", "due_date"),
			required(amount("totalAmount", "total_amount")),
			amount("paidAmount", "paid_amount"),
			enum("status", "status", "Draft", "Sent", "Paid", "Overdue", "Cancelled"),
			text("notes", "notes"),
		},
		Search:         []string{"invoiceNumber", "notes"},
		Filters:        map[string]string{"status": "status", "customerId": "customerId"},
		Order:          []Order{{Field: "issueDate", Desc: true}},
		Includes:       []Include{{Field: "customer", Table: "customers", ForeignKey: "customer_id", Attrs: customerBrief}},
		DetailIncludes: []Include{{Field: "customer", Table: "customers", ForeignKey: "customer_id", Attrs: customerDetail}},
		Owner:          "created_by",
		Stats:          Stats{GroupBy: []string{"status"}, Sums: []string{"totalAmount", "paidAmount"}},
		UniqueMessage:  "Invoice number already exists",
	}

	Bills = &Entity{
		Name:  "Bill",
		Path:  "bills",
		Table: "bills",
		Columns: []Column{
			required(text("billNumber", "bill_number")),
			required(ref("vendorId", "vendor_id")),
			required(date("billDate", "bill_date")),
			date("dueDate", "due_date"),
			required(amount("totalAmount", "total_amount")),
			amount("paidAmount", "paid_amount"),
			enum("status", "status", "Pending", "Paid", "Overdue", "Cancelled"),
			text("category", "category"),
			text("description", "description"),
		},
		Search:         []string{"billNumber", "description"},
		Filters:        map[string]string{"status": "status", "category": "category", "vendorId": "vendorId"},
		Order:          []Order{{Field: "billDate", Desc: true}},
		Includes:       []Include{{Field: "vendor", Table: "vendors", ForeignKey: "vendor_id", Attrs: vendorBrief}},
		DetailIncludes: []Include{{Field: "vendor", Table: "vendors", ForeignKey: "vendor_id", Attrs: vendorDetail}},
		Owner:          "created_by",
		Stats:          Stats{GroupBy: []string{"status", "category"}, Sums: []string{"totalAmount", "paidAmount"}},
		UniqueMessage:  "Bill number already exists",
	}

	Expenses = &Entity{
		Name:  "Expense",
		Path:  "expenses",
		Table: "expenses",
		Columns: []Column{
			required(text("title", "title")),
			required(amount("amount", "amount")),
			required(date("expenseDate", "expense_date")),
			text("category", "category"),
			enum("status", "status", "Pending", "Approved", "Rejected", "Reimbursed"),
			ref("employeeId", "employee_id"),
			text("description", "description"),
			text("receiptUrl", "receipt_url"),
		},
		Search:   []string{"title", "description"},
		Filters:  map[string]string{"status": "status", "category": "category", "employeeId": "employeeId"},
		Order:    []Order{{Field: "expenseDate", Desc: true}},
		Includes: []Include{{Field: "employee", Table: "employees", ForeignKey: "employee_id", Attrs: employeeBrief}},
		Owner:    "created_by",
		Stats:    Stats{GroupBy: []string{"category", "status"}, Sums: []string{"amount"}},
	}

	TaxRecords = &Entity{
		Name:  "Tax record",
		Path:  "taxes",
		Table: "tax_records",
		Columns: []Column{
			required(enum("taxType", "tax_type", "VAT", "PAYE", "WHT", "CIT", "Other")),
			required(text("period", "period")),
			required(amount("amount", "amount")),
			date("dueDate", "due_date"),
			date("filedDate", "filed_date"),
			enum("status", "status", "Pending", "Filed", "Paid", "Overdue"),
			text("reference", "reference"),
		},
		Search:  []string{"reference", "period"},
		Filters: map[string]string{"status": "status", "type": "taxType"},
		Order:   []Order{{Field: "dueDate", Desc: true}},
		Owner:   "created_by",
		Stats:   Stats{GroupBy: []string{"status", "taxType"}, Sums: []string{"amount"}},
	}

	Departments = &Entity{
		Name:  "Department",
		Path:  "departments",
		Table: "departments",
		Columns: []Column{
			required(text("name", "name")),
			required(text("code", "code")),
			text("description", "description"),
			ref("managerId", "manager_id"),
			amount("budget", "budget"),
			text("location", "location"),
		},
		Search:   []string{"name", "code", "description"},
		Filters:  map[string]string{"location": "location"},
		Order:    []Order{{Field: "name"}},
		Includes: []Include{{Field: "manager", Table: "employees", ForeignKey: "manager_id", Attrs: employeeBrief}},
		Computed: []Computed{{Field: "employeeCount", SQL: activeEmployees}},
		Guards: []Guard{
			{Table: "users", ForeignKey: "department_id", Label: "users"},
			{Table: "employees", ForeignKey: "department_id", Label: "employees"},
		},
		Owner:         "created_by",
		Stats:         Stats{GroupBy: []string{"location"}, Sums: []string{"budget"}},
		UniqueMessage: "Department code already exists",
	}

	Employees = &Entity{
		Name:  "Employee",
		Path:  "employees",
		Table: "employees",
		Columns: []Column{
			required(text("employeeCode", "employee_code")),
			required(text("firstName", "first_name")),
			required(text("lastName", "last_name")),
			required(text("email", "email")),
			text("phone", "phone"),
			text("position", "position"),
			ref("departmentId", "department_id"),
			date("hireDate", "hire_date"),
			enum("employmentType", "employment_type", "Full-time", "Part-time", "Contract", "Intern"),
			enum("status", "status", "Active", "On Leave", "Terminated"),
			amount("basicSalary", "basic_salary"),
			ref("userId", "user_id"),
		},
		Search:         []string{"firstName", "lastName", "email", "employeeCode", "position"},
		Filters:        map[string]string{"status": "status", "department": "departmentId", "employmentType": "employmentType"},
		Order:          []Order{{Field: "firstName"}, {Field: "lastName"}},
		Includes:       []Include{{Field: "department", Table: "departments", ForeignKey: "department_id", Attrs: departmentBrief}},
		DetailIncludes: []Include{{Field: "department", Table: "departments", ForeignKey: "department_id", Attrs: []Attr{{"id", "id"}, {"name", "name"}, {"code", "code"}, {"location", "location"}}}},
		HasMany: []HasMany{{
			Field:      "recentAttendance",
			Table:      "attendance_records",
			ForeignKey: "employee_id",
			Attrs:      []Attr{{"id", "id"}, {"date", "date"}, {"status", "status"}, {"checkInTime", "check_in_time"}, {"checkOutTime", "check_out_time"}, {"totalHours", "total_hours"}},
			Order:      "date DESC",
			Limit:      7,
		}},
		Owner:         "created_by",
		Stats:         Stats{GroupBy: []string{"status", "employmentType", "departmentId"}, Sums: []string{"basicSalary"}},
		UniqueMessage: "Employee code or email already exists",
	}

	Projects = &Entity{
		Name:  "Project",
		Path:  "projects",
		Table: "projects",
		Columns: []Column{
			required(text("name", "name")),
			required(text("code", "code")),
			text("description", "description"),
			ref("departmentId", "department_id"),
			ref("managerId", "manager_id"),
			date("startDate", "start_date"),
			date("endDate", "end_date"),
			amount("budget", "budget"),
			enum("status", "status", "Planning", "Active", "On Hold", "Completed", "Cancelled"),
			enum("priority", "priority", "Low", "Medium", "High", "Critical"),
			integer("progress", "progress"),
		},
		Search:  []string{"name", "code", "description"},
		Filters: map[string]string{"status": "status", "priority": "priority", "department": "departmentId"},
		Order:   []Order{{Field: "startDate", Desc: true}},
		Includes: []Include{
			{Field: "department", Table: "departments", ForeignKey: "department_id", Attrs: departmentBrief},
			{Field: "manager", Table: "employees", ForeignKey: "manager_id", Attrs: employeeBrief},
		},
		HasMany: []HasMany{{
			Field:      "tasks",
			Table:      "tasks",
			ForeignKey: "project_id",
			Attrs:      []Attr{{"id", "id"}, {"title", "title"}, {"status", "status"}, {"priority", "priority"}, {"dueDate", "due_date"}},
			Order:      "due_date ASC NULLS LAST",
			Limit:      20,
		}},
		Computed:      []Computed{{Field: "taskCount", SQL: activeTasks}, {Field: "openTaskCount", SQL: openTasks}},
		Guards:        []Guard{{Table: "tasks", ForeignKey: "project_id", Label: "tasks"}},
		Owner:         "created_by",
		Stats:         Stats{GroupBy: []string{"status", "priority"}, Sums: []string{"budget"}},
		UniqueMessage: "Project code already exists",
	}

	Tasks = &Entity{
		Name:  "Task",
		Path:  "tasks",
		Table: "tasks",
		Columns: []Column{
			required(text("title", "title")),
			text("description", "description"),
			required(ref("projectId", "project_id")),
			ref("assigneeId", "assignee_id"),
			enum("status", "status", "To Do", "In Progress", "Review", "Done"),
			enum("priority", "priority", "Low", "Medium", "High", "Critical"),
			date("dueDate", "due_date"),
			amount("estimatedHours", "estimated_hours"),
		},
		Search:  []string{"title", "description"},
		Filters: map[string]string{"status": "status", "priority": "priority", "projectId": "projectId", "assigneeId": "assigneeId"},
		Order:   []Order{{Field: "dueDate"}},
		Includes: []Include{
			{Field: "project", Table: "projects", ForeignKey: "project_id", Attrs: projectBrief},
			{Field: "assignee", Table: "employees", ForeignKey: "assignee_id", Attrs: employeeBrief},
		},
		Owner: "created_by",
		Stats: Stats{GroupBy: []string{"status", "priority"}, Sums: []string{"estimatedHours"}},
	}

	Assets = &Entity{
		Name:  "Asset",
		Path:  "assets",
		Table: "assets",
		Columns: []Column{
			required(text("assetTag", "asset_tag")),
			required(text("name", "name")),
			text("category", "category"),
			text("location", "location"),
			ref("departmentId", "department_id"),
			ref("assignedTo", "assigned_to"),
			date("purchaseDate", "purchase_date"),
			amount("purchaseCost", "purchase_cost"),
			amount("currentValue", "current_value"),
			enum("status", "status", "Available", "In Use", "Maintenance", "Retired"),
			enum("condition", "condition", "New", "Good", "Fair", "Poor"),
		},
		Search:  []string{"name", "assetTag"},
		Filters: map[string]string{"status": "status", "category": "category", "department": "departmentId"},
		Order:   []Order{{Field: "name"}},
		Includes: []Include{
			{Field: "department", Table: "departments", ForeignKey: "department_id", Attrs: departmentBrief},
			{Field: "assignee", Table: "employees", ForeignKey: "assigned_to", Attrs: employeeBrief},
		},
		Owner:         "created_by",
		Stats:         Stats{GroupBy: []string{"status", "category"}, Sums: []string{"purchaseCost", "currentValue"}},
		UniqueMessage: "Asset tag already exists",
	}

	InventoryItems = &Entity{
		Name:  "Inventory item",
		Path:  "inventory",
		Table: "inventory_items",
		Columns: []Column{
			required(text("sku", "sku")),
			required(text("name", "name")),
			text("category", "category"),
			integer("quantity", "quantity"),
			text("unit", "unit"),
			amount("unitPrice", "unit_price"),
			integer("reorderLevel", "reorder_level"),
			text("location", "location"),
			ref("supplierId", "supplier_id"),
			enum("status", "status", "In Stock", "Low Stock", "Out of Stock", "Discontinued"),
		},
		Search:        []string{"name", "sku"},
		Filters:       map[string]string{"category": "category", "status": "status"},
		Order:         []Order{{Field: "name"}},
		Includes:      []Include{{Field: "supplier", Table: "vendors", ForeignKey: "supplier_id", Attrs: vendorBrief}},
		Owner:         "created_by",
		Stats:         Stats{GroupBy: []string{"category", "status"}, Sums: []string{"unitPrice"}},
		UniqueMessage: "SKU already exists",
	}

	LeaveTypes = &Entity{
		Name:  "Leave type",
		Path:  "leave-types",
		Table: "leave_types",
		Columns: []Column{
			required(text("name", "name")),
			text("description", "description"),
			required(integer("daysAllowed", "days_allowed")),
			readOnly(integer("daysUsed", "days_used")),
			readOnly(integer("daysRemaining", "days_remaining")),
			flag("isPaid", "is_paid"),
		},
		Search:        []string{"name", "description"},
		Order:         []Order{{Field: "name"}},
		Guards:        []Guard{{Table: "leave_requests", ForeignKey: "leave_type_id", Label: "leave requests"}},
		Stats:         Stats{GroupBy: []string{"isPaid"}},
		UniqueMessage: "Leave type already exists",
		Recompute:     []Recompute{{Column: "days_remaining", Source: "days_allowed", SQL: "%s::integer - days_used"}},
		BeforeCreate: func(values map[string]any) error {
			values["days_used"] = int64(0)
			values["days_remaining"] = values["days_allowed"]
			return nil
		},
	}

	LeaveRequests = &Entity{
		Name:  "Leave request",
		Path:  "leave",
		Table: "leave_requests",
		Columns: []Column{
			required(createOnly(ref("employeeId", "employee_id"))),
			required(createOnly(ref("leaveTypeId", "leave_type_id"))),
			required(createOnly(date("startDate", "start_date"))),
			required(createOnly(date("endDate", "end_date"))),
			readOnly(integer("days", "days")),
			text("reason", "reason"),
			readOnly(enum("status", "status", LeaveStatuses...)),
			readOnly(ref("approvedBy", "approved_by")),
			text("comments", "comments"),
		},
		Search:  []string{"reason"},
		Filters: map[string]string{"status": "status", "employeeId": "employeeId", "leaveTypeId": "leaveTypeId"},
		Order:   []Order{{Field: "startDate", Desc: true}},
		Includes: []Include{
			{Field: "employee", Table: "employees", ForeignKey: "employee_id", Attrs: employeeBrief},
			{Field: "leaveType", Table: "leave_types", ForeignKey: "leave_type_id", Attrs: []Attr{{"id", "id"}, {"name", "name"}}},
		},
		DetailIncludes: []Include{
			{Field: "employee", Table: "employees", ForeignKey: "employee_id", Attrs: employeeDetail},
			{Field: "leaveType", Table: "leave_types", ForeignKey: "leave_type_id", Attrs: []Attr{{"id", "id"}, {"name", "name"}, {"daysRemaining", "days_remaining"}}},
		},
		Owner: "created_by",
		Stats: Stats{GroupBy: []string{"status", "leaveTypeId"}},
		BeforeCreate: func(values map[string]any) error {
			days, err := hr.LeaveDays(values["start_date"].(string), values["end_date"].(string))
			if err != nil {
				return errs.Validation(err.Error())
			}
			values["days"] = int64(days)
			return nil
		},
	}

	AttendanceRecords = &Entity{
		Name:  "Attendance record",
		Path:  "attendance",
		Table: "attendance_records",
		Columns: []Column{
			required(createOnly(ref("employeeId", "employee_id"))),
			required(createOnly(date("date", "date"))),
			createOnly(clock("checkInTime", "check_in_time")),
			createOnly(clock("checkOutTime", "check_out_time")),
			enum("status", "status", "Present", "Absent", "Late", "Half Day", "On Leave"),
			text("location", "location"),
			readOnly(text("totalHours", "total_hours")),
			readOnly(text("overtime", "overtime")),
			text("notes", "notes"),
		},
		Search:        []string{"notes", "location"},
		Filters:       map[string]string{"status": "status", "employeeId": "employeeId", "date": "date"},
		Order:         []Order{{Field: "date", Desc: true}},
		Includes:      []Include{{Field: "employee", Table: "employees", ForeignKey: "employee_id", Attrs: employeeBrief}},
		Stats:         Stats{GroupBy: []string{"status"}},
		UniqueMessage: "Attendance already recorded for this employee and date",
		BeforeCreate: func(values map[string]any) error {
			in, hasIn := values["check_in_time"].(string)
			out, hasOut := values["check_out_time"].(string)
			if !hasIn || !hasOut {
				return nil
			}
			total, overtime, err := hr.WorkedHours(in, out)
			if err != nil {
				return errs.Validation(err.Error())
			}
			values["total_hours"] = total
			if overtime != nil {
				values["overtime"] = *overtime
			}
			return nil
		},
	}

	PayrollRecords = &Entity{
		Name:  "Payroll record",
		Path:  "payroll",
		Table: "payroll_records",
		Columns: []Column{
			required(createOnly(ref("employeeId", "employee_id"))),
			required(createOnly(integer("month", "month"))),
			required(createOnly(integer("year", "year"))),
			required(createOnly(amount("basicSalary", "basic_salary"))),
			readOnly(amount("allowances", "allowances")),
			readOnly(amount("deductions", "deductions")),
			readOnly(amount("netSalary", "net_salary")),
			enum("status", "status", "Pending", "Processed", "Paid"),
			date("paymentDate", "payment_date"),
		},
		Filters:       map[string]string{"status": "status", "month": "month", "year": "year", "employeeId": "employeeId"},
		Order:         []Order{{Field: "year", Desc: true}, {Field: "month", Desc: true}},
		Owner:         "created_by",
		Includes:      []Include{{Field: "employee", Table: "employees", ForeignKey: "employee_id", Attrs: employeeBrief}},
		Stats:         Stats{GroupBy: []string{"status"}, Sums: []string{"basicSalary", "netSalary"}},
		UniqueMessage: "Payroll already exists for this employee and period",
		BeforeCreate: func(values map[string]any) error {
			month := values["month"].(int64)
			if month < 1 || month > 12 {
				return errs.Validation("month must be between 1 and 12")
			}
			basic, err := money.Parse(values["basic_salary"])
			if err != nil {
				return errs.Validation(err.Error())
			}
			amounts := hr.ComputePayroll(basic)
			values["allowances"] = money.Format(amounts.Allowances)
			values["deductions"] = money.Format(amounts.Deductions)
			values["net_salary"] = money.Format(amounts.NetSalary)
			return nil
		},
	}

	TrainingCourses = &Entity{
		Name:  "Training course",
		Path:  "training",
		Table: "training_courses",
		Columns: []Column{
			required(text("title", "title")),
			text("description", "description"),
			text("category", "category"),
			text("instructor", "instructor"),
			date("startDate", "start_date"),
			date("endDate", "end_date"),
			integer("durationHours", "duration_hours"),
			integer("maxParticipants", "max_participants"),
			enum("status", "status", "Scheduled", "Ongoing", "Completed", "Cancelled"),
			text("location", "location"),
			amount("cost", "cost"),
		},
		Search:   []string{"title", "description", "instructor"},
		Filters:  map[string]string{"status": "status", "category": "category"},
		Order:    []Order{{Field: "startDate", Desc: true}},
		Computed: []Computed{{Field: "enrolledCount", SQL: enrolled}},
		HasMany: []HasMany{{
			Field:      "enrollments",
			Table:      "training_enrollments",
			ForeignKey: "course_id",
			Attrs:      []Attr{{"id", "id"}, {"employeeId", "employee_id"}, {"status", "status"}, {"enrollmentDate", "enrollment_date"}},
			Order:      "enrollment_date DESC",
			Limit:      50,
		}},
		Owner: "created_by",
		Stats: Stats{GroupBy: []string{"status", "category"}, Sums: []string{"cost"}},
	}

	TrainingEnrollments = &Entity{
		Name:  "Training enrollment",
		Path:  "training-enrollments",
		Table: "training_enrollments",
		Columns: []Column{
			required(createOnly(ref("courseId", "course_id"))),
			required(createOnly(ref("employeeId", "employee_id"))),
			date("enrollmentDate", "enrollment_date"),
			enum("status", "status", "Enrolled", "Completed", "Dropped"),
			date("completionDate", "completion_date"),
			amount("score", "score"),
		},
		Filters: map[string]string{"status": "status", "courseId": "courseId", "employeeId": "employeeId"},
		Order:   []Order{{Field: "enrollmentDate", Desc: true}},
		Includes: []Include{
			{Field: "course", Table: "training_courses", ForeignKey: "course_id", Attrs: []Attr{{"id", "id"}, {"title", "title"}}},
			{Field: "employee", Table: "employees", ForeignKey: "employee_id", Attrs: employeeBrief},
		},
		Stats:         Stats{GroupBy: []string{"status"}},
		UniqueMessage: "Employee already enrolled in this course",
	}

	JobPostings = &Entity{
		Name:  "Job posting",
		Path:  "jobs",
		Table: "job_postings",
		Columns: []Column{
			required(text("title", "title")),
			ref("departmentId", "department_id"),
			text("location", "location"),
			enum("employmentType", "employment_type", "Full-time", "Part-time", "Contract", "Intern"),
			text("description", "description"),
			text("requirements", "requirements"),
			amount("salaryMin", "salary_min"),
			amount("salaryMax", "salary_max"),
			enum("status", "status", "Draft", "Open", "On Hold", "Closed"),
			date("postedDate", "posted_date"),
			date("closingDate", "closing_date"),
			integer("applicantCount", "applicant_count"),
		},
		Search:   []string{"title", "description", "location"},
		Filters:  map[string]string{"status": "status", "department": "departmentId", "employmentType": "employmentType"},
		Order:    []Order{{Field: "postedDate", Desc: true}},
		Includes: []Include{{Field: "department", Table: "departments", ForeignKey: "department_id", Attrs: departmentBrief}},
		Owner:    "created_by",
		Stats:    Stats{GroupBy: []string{"status", "employmentType"}},
	}

	Documents = &Entity{
		Name:  "Document",
		Path:  "documents",
		Table: "documents",
		Columns: []Column{
			required(text("title", "title")),
			text("category", "category"),
			required(text("fileName", "file_name")),
			text("fileUrl", "file_url"),
			integer("fileSize", "file_size"),
			text("mimeType", "mime_type"),
			text("description", "description"),
		},
		Search:  []string{"title", "fileName", "description"},
		Filters: map[string]string{"category": "category"},
		Order:   []Order{{Field: "title"}},
		Owner:   "uploaded_by",
		Stats:   Stats{GroupBy: []string{"category"}},
	}

	ComplianceRecords = &Entity{
		Name:  "Compliance record",
		Path:  "compliance",
		Table: "compliance_records",
		Columns: []Column{
			required(text("title", "title")),
			text("regulation", "regulation"),
			text("category", "category"),
			enum("status", "status", "Compliant", "Non-Compliant", "Pending Review", "In Progress"),
			date("dueDate", "due_date"),
			ref("responsibleId", "responsible_id"),
			enum("riskLevel", "risk_level", "Low", "Medium", "High", "Critical"),
			text("description", "description"),
			date("lastReviewDate", "last_review_date"),
		},
		Search:   []string{"title", "regulation", "description"},
		Filters:  map[string]string{"status": "status", "category": "category", "riskLevel": "riskLevel"},
		Order:    []Order{{Field: "dueDate"}},
		Includes: []Include{{Field: "responsible", Table: "employees", ForeignKey: "responsible_id", Attrs: employeeBrief}},
		Owner:    "created_by",
		Stats:    Stats{GroupBy: []string{"status", "riskLevel"}},
	}

	Leads = &Entity{
		Name:  "Lead",
		Path:  "leads",
		Table: "leads",
		Columns: []Column{
			required(text("name", "name")),
			text("company", "company"),
			text("email", "email"),
			text("phone", "phone"),
			text("source", "source"),
			enum("status", "status", "New", "Contacted", "Qualified", "Proposal", "Won", "Lost"),
			amount("estimatedValue", "estimated_value"),
			ref("assignedTo", "assigned_to"),
			text("notes", "notes"),
		},
		Search:   []string{"name", "company", "email"},
		Filters:  map[string]string{"status": "status", "source": "source"},
		Order:    []Order{{Field: "name"}},
		Includes: []Include{{Field: "assignee", Table: "employees", ForeignKey: "assigned_to", Attrs: employeeBrief}},
		Owner:    "created_by",
		Stats:    Stats{GroupBy: []string{"status", "source"}, Sums: []string{"estimatedValue"}},
	}

	Campaigns = &Entity{
		Name:  "Campaign",
		Path:  "campaigns",
		Table: "campaigns",
		Columns: []Column{
			required(text("name", "name")),
			text("channel", "channel"),
			date("startDate", "start_date"),
			date("endDate", "end_date"),
			amount("budget", "budget"),
			amount("spent", "spent"),
			enum("status", "status", "Planned", "Active", "Paused", "Completed"),
			integer("leadsGenerated", "leads_generated"),
			text("description", "description"),
		},
		Search:  []string{"name", "description"},
		Filters: map[string]string{"status": "status", "channel": "channel"},
		Order:   []Order{{Field: "startDate", Desc: true}},
		Owner:   "created_by",
		Stats:   Stats{GroupBy: []string{"status", "channel"}, Sums: []string{"budget", "spent"}},
	}
)

var LeaveStatuses = []string{"Pending", "Approved", "Rejected", "Cancelled"}

var catalog = []*Entity{
	Accounts, Transactions, Customers, Vendors, Invoices, Bills, Expenses, TaxRecords,
	Departments, Employees, Projects, Tasks, Assets, InventoryItems,
	LeaveTypes, LeaveRequests, AttendanceRecords, PayrollRecords,
	TrainingCourses, TrainingEnrollments, JobPostings, Documents, ComplianceRecords,
	Leads, Campaigns,
}

func All() []*Entity {
	return catalog
}

func Lookup(path string) (*Entity, bool) {
	return lo.Find(catalog, func(e *Entity) bool { return e.Path == path })
}
