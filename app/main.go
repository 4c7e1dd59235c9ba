package main

import (
	"github.com/maxence-charriere/go-app/v10/pkg/app"

	"leaveboard/internal/api"
	"leaveboard/internal/session"
)

// The store and the client reference each other (the client asks the
// store for the bearer token), so they are built in two steps.
var (
	store  = session.New(localStore{})
	client = api.New("", store.Token)
)

func main() {
	store.Bind(client)

	app.Route("/", func() app.Composer { return &HomePage{} })
	app.Route("/login", func() app.Composer { return &LoginPage{} })
	app.Route("/register", func() app.Composer { return &RegisterPage{} })
	app.Route("/forgot-password", func() app.Composer { return &ForgotPasswordPage{} })
	app.Route("/employee", func() app.Composer { return &EmployeeDashboard{} })
	app.Route("/employee/my-requests", func() app.Composer { return &MyRequestsPage{} })
	app.Route("/employee/submit-request", func() app.Composer { return &SubmitRequestPage{} })
	app.Route("/manager/dashboard", func() app.Composer { return &ManagerDashboard{} })
	app.Route("/manager/approvals", func() app.Composer { return &ApprovalsPage{} })
	app.RunWhenOnBrowser()
}
