package messages

import (
	"fmt"

	"github.com/gobuffalo/pop/v6"

	"github.com/claimwell/claims-api/log"
	"github.com/claimwell/claims-api/models"
	"github.com/claimwell/claims-api/notifications"
)

// ClaimCreatedSend notifies the client's admins that a new claim was
// submitted. Send failures are logged; a created claim is never rolled back
// because an email could not go out.
func ClaimCreatedSend(tx *pop.Connection, claim models.Claim) {
	admins, err := models.ClientAdminUsers(tx, claim.ClientID)
	if err != nil {
		log.Errorf("error finding claim notification recipients for claim %s ... %v", claim.ID, err)
		return
	}

	for _, admin := range admins {
		msg := notifications.NewEmailMessage()
		msg.ToName = admin.Name()
		msg.ToEmail = admin.Email
		msg.Subject = "New claim " + claimLabel(claim)
		msg.Body = fmt.Sprintf(
			`<p>A new claim %s was created.</p><p><a href="%s">View the claim</a></p>`,
			claimLabel(claim), claimURL(claim))

		if err := notifications.Send(msg); err != nil {
			log.Errorf("error sending claim created message for claim %s ... %v", claim.ID, err)
		}
	}
}

// ClaimTransitionedSend notifies the submitting affiliate's user, when there
// is one, that the claim changed status.
func ClaimTransitionedSend(tx *pop.Connection, claim models.Claim, history models.ClaimHistory) {
	var affiliate models.Affiliate
	if err := affiliate.FindByID(tx, claim.AffiliateID); err != nil {
		log.Errorf("error loading affiliate for claim %s ... %v", claim.ID, err)
		return
	}
	if !affiliate.UserID.Valid {
		return
	}

	var user models.User
	if err := user.FindByID(tx, affiliate.UserID.UUID); err != nil {
		log.Errorf("error loading affiliate user for claim %s ... %v", claim.ID, err)
		return
	}

	body := fmt.Sprintf(
		`<p>Your claim %s is now <strong>%s</strong>.</p>`,
		claimLabel(claim), claim.Status)
	if history.Reason.Valid {
		body += fmt.Sprintf("<p>Reason: %s</p>", history.Reason.String)
	}
	body += fmt.Sprintf(`<p><a href="%s">View the claim</a></p>`, claimURL(claim))

	msg := notifications.NewEmailMessage()
	msg.ToName = user.Name()
	msg.ToEmail = user.Email
	msg.Subject = fmt.Sprintf("Claim %s is now %s", claimLabel(claim), claim.Status)
	msg.Body = body

	if err := notifications.Send(msg); err != nil {
		log.Errorf("error sending claim transition message for claim %s ... %v", claim.ID, err)
	}
}
