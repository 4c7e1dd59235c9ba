package main

import (
	"context"
	"time"

	"github.com/maxence-charriere/go-app/v10/pkg/app"

	"leaveboard/internal/api"
	"leaveboard/internal/domain"
	"leaveboard/internal/validate"
)

// SubmitRequestPage creates a leave request. Validation runs entirely
// client-side before any network call; all violated fields are reported
// at once.
type SubmitRequestPage struct {
	app.Compo

	form      validate.LeaveForm
	fieldErrs map[string]string
	submitErr string
	busy      bool
	guarded   bool
}

func (p *SubmitRequestPage) OnMount(ctx app.Context) {
	p.init(ctx)
}

func (p *SubmitRequestPage) OnNav(ctx app.Context) {
	p.init(ctx)
}

func (p *SubmitRequestPage) init(ctx app.Context) {
	p.guarded = guard(ctx, p.init)
}

func (p *SubmitRequestPage) onSubmit(ctx app.Context, e app.Event) {
	e.PreventDefault()
	if p.busy {
		return
	}

	p.fieldErrs = validate.LeaveRequest(p.form, time.Now())
	p.submitErr = ""
	if len(p.fieldErrs) > 0 {
		return
	}

	p.busy = true
	payload := api.LeaveSubmission{
		LeaveType:    p.form.LeaveType,
		StartDate:    p.form.StartDate,
		EndDate:      p.form.EndDate,
		Reason:       p.form.Reason,
		ManagerEmail: p.form.ManagerEmail,
	}
	ctx.Async(func() {
		err := client.SubmitLeave(context.Background(), payload)
		ctx.Dispatch(func(ctx app.Context) {
			p.busy = false
			if err != nil {
				p.submitErr = "Could not submit the request: " + err.Error()
				return
			}
			ctx.Navigate("/employee/my-requests")
		})
	})
}

func (p *SubmitRequestPage) fieldError(key string) app.UI {
	return app.If(p.fieldErrs[key] != "", func() app.UI {
		return app.Span().Class("field-error").Text(p.fieldErrs[key])
	})
}

func (p *SubmitRequestPage) textField(label, id, typ, key string, value string, set func(string)) app.UI {
	return app.Div().Class("form-field").Body(
		app.Label().For(id).Text(label),
		app.Input().
			ID(id).
			Type(typ).
			Value(value).
			OnInput(func(ctx app.Context, e app.Event) {
				set(ctx.JSSrc().Get("value").String())
			}),
		p.fieldError(key),
	)
}

func (p *SubmitRequestPage) Render() app.UI {
	if !p.guarded {
		return app.Div().Class("page-loading").Text("Loading...")
	}

	needsEmergency := p.form.LeaveType == domain.TypeSick || p.form.LeaveType == domain.TypePersonal

	return app.Div().
		Class("page").
		Body(
			&navbar{},
			app.Main().Class("form-page").Body(
				app.H1().Text("Submit Leave Request"),
				app.If(p.submitErr != "", func() app.UI {
					return app.Div().Class("banner banner-error").Text(p.submitErr)
				}),
				app.Form().OnSubmit(p.onSubmit).Body(
					app.Div().Class("form-field").Body(
						app.Label().For("leave-type").Text("Leave type"),
						app.Select().
							ID("leave-type").
							OnChange(func(ctx app.Context, e app.Event) {
								p.form.LeaveType = ctx.JSSrc().Get("value").String()
							}).
							Body(
								app.Option().Value("").Text("Select a type").Selected(p.form.LeaveType == ""),
								app.Option().Value(domain.TypeAnnual).Text("Annual").Selected(p.form.LeaveType == domain.TypeAnnual),
								app.Option().Value(domain.TypeSick).Text("Sick").Selected(p.form.LeaveType == domain.TypeSick),
								app.Option().Value(domain.TypePersonal).Text("Personal").Selected(p.form.LeaveType == domain.TypePersonal),
							),
						p.fieldError("leaveType"),
					),
					p.textField("Start date", "start-date", "date", "startDate", p.form.StartDate, func(v string) { p.form.StartDate = v }),
					p.textField("End date", "end-date", "date", "endDate", p.form.EndDate, func(v string) { p.form.EndDate = v }),
					app.Div().Class("form-field").Body(
						app.Label().For("reason").Text("Reason"),
						app.Textarea().
							ID("reason").
							Text(p.form.Reason).
							OnInput(func(ctx app.Context, e app.Event) {
								p.form.Reason = ctx.JSSrc().Get("value").String()
							}),
						p.fieldError("reason"),
					),
					p.textField("Manager email", "manager-email", "email", "managerEmail", p.form.ManagerEmail, func(v string) { p.form.ManagerEmail = v }),
					app.If(needsEmergency, func() app.UI {
						return app.Div().Body(
							p.textField("Emergency contact name", "emergency-contact", "text", "emergencyContact", p.form.EmergencyContact, func(v string) { p.form.EmergencyContact = v }),
							p.textField("Emergency contact phone", "emergency-phone", "tel", "emergencyPhone", p.form.EmergencyPhone, func(v string) { p.form.EmergencyPhone = v }),
						)
					}),
					app.Button().
						Class("btn btn-primary").
						Type("submit").
						Disabled(p.busy).
						Text("Submit request"),
				),
			),
		)
}
