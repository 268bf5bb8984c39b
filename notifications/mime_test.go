package notifications

func (ts *TestSuite) Test_rawEmail() {
	raw := string(rawEmail(
		"to@example.com",
		"from@example.com",
		"test subject",
		"<html><body><h1>Claim update</h1><p>Your claim moved forward.</p></body></html>",
	))

	ts.Contains(raw, "To: to@example.com")
	ts.Contains(raw, "From: from@example.com")
	ts.Contains(raw, "Subject: test subject")
	ts.Contains(raw, "Content-Type: multipart/alternative")
	ts.Contains(raw, "text/plain")
	ts.Contains(raw, "text/html")
	ts.Contains(raw, "<h1>Claim update</h1>")

	// the plain part is the html body stripped of markup
	ts.Contains(raw, "Your claim moved forward.")
}
