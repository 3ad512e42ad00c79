package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/imararent/imararent/internal/client/flow"
	"github.com/imararent/imararent/internal/client/otp"
)

// Verify runs the interactive code-entry prompt for the pending
// verification. Input is mapped onto the widget: a single character is a
// keystroke in the focused slot, several characters are a paste, "<" is
// backspace. The prompt exits when the code is accepted or the user goes
// back to the registration form.
func (a *App) Verify(ctx context.Context) error {
	email := a.flow.Draft().Email
	fmt.Printf("Enter the 6-digit security code we sent to %s\n", email)
	fmt.Println("Type digits to fill slots, '<' to go back one slot, 'ok' to submit,")
	fmt.Println("'resend' for a new code, 'back' to return to registration.")

	var widget *otp.Widget
	widget = otp.NewWidget(
		func(code string) {
			widget.SetInFlight(true)
			defer widget.SetInFlight(false)
			_ = a.flow.SubmitCode(ctx, code)
		},
		func() bool {
			issued, _ := a.flow.RequestResend(ctx)
			return issued
		},
	)
	widget.Start()
	defer widget.Stop()

	for a.flow.Mode() == flow.ModePendingVerification {
		hint := fmt.Sprintf("resend in %ds", widget.Cooldown())
		if widget.CanResend() {
			hint = "resend available"
		}
		input, err := getSimpleText(a.reader, fmt.Sprintf("%s (%s)", widget.Render(), hint), os.Stdout)
		if err != nil {
			return err
		}

		switch input {
		case "":
			continue

		case "ok", "submit":
			if !widget.Submit() {
				fmt.Println("All six digits are required before submitting.")
				continue
			}
			a.printFeedback()
			if a.flow.Mode() == flow.ModeLogin {
				return nil
			}

		case "resend":
			if !widget.Resend() {
				if !widget.CanResend() {
					fmt.Printf("Please wait %ds before requesting a new code.\n", widget.Cooldown())
				} else {
					a.printFeedback()
				}
				continue
			}
			a.printFeedback()

		case "back":
			a.flow.Back()
			return nil

		case "<":
			widget.Backspace(widget.Focus())

		default:
			if len([]rune(input)) == 1 {
				if !widget.Enter(widget.Focus(), input) {
					fmt.Println("Digits only.")
				}
			} else {
				if !widget.Paste(input) {
					fmt.Println("Pasted text must be digits only.")
				}
			}
		}
	}
	return nil
}
