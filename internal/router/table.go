package router

// Layout components
const (
	MainLayout = "MainLayout"
	AuthLayout = "AuthLayout"
	AppLayout  = "AppLayout"
)

// DefaultLayouts returns the storefront, authentication and dashboard route tree.
func DefaultLayouts() []Layout {
	return []Layout{
		{
			Path:      "/",
			Component: MainLayout,
			Children: []Route{
				{Path: "/", Name: "Index", Component: "Index"},
				{Path: "products", Name: "Products", Component: "Products"},
				{Path: "product/:id", Name: "ProductSingle", Component: "ProductSingle"},
			},
		},
		{
			Path:      "/auth",
			Component: AuthLayout,
			Children: []Route{
				{Path: "login", Name: "Login", Component: "Login"},
				{Path: "forgot-password", Name: "ForgotPassword", Component: "ForgotPassword"},
				{Path: "otp-code", Name: "OtpCode", Component: "OtpCode"},
				{Path: "reset-password", Name: "ResetPassword", Component: "ResetPassword"},
			},
		},
		{
			Path:      "/app",
			Component: AppLayout,
			Children: []Route{
				{Path: "dashboard", Name: "Dashboard", Component: "Dashboard"},
				{Path: "chat", Name: "Chat", Component: "Chat"},
				{Path: "tasks", Name: "Task", Component: "Tasks"},
				{Path: "products", Name: "AllProducts", Component: "AllProducts"},
				{Path: "employees", Name: "Employees", Component: "Employees"},
				{Path: "documents", Name: "Documents", Component: "Documents"},
				{Path: "users", Name: "Users", Component: "Users"},
			},
		},
	}
}

// Default returns the application route table
func Default() *Table {
	return MustNew(DefaultLayouts()...)
}
