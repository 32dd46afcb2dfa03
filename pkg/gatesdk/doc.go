/*
Package gatesdk is a client for the Talentgate access service.

The gate answers page routes with 303 See Other whenever the caller must go
elsewhere, so the Client never follows redirects itself. Calls that end in a
redirect return the Location; calls that expect JSON return a *RedirectError
when the gate sends the caller away instead:

	c, err := gatesdk.NewClient("http://localhost:8080")

	next, err := c.Login(ctx, gatesdk.LoginRequest{Email: email, Password: pw})
	// next == "/admin"

	_, err = c.Section(ctx, next)
	var redir *gatesdk.RedirectError
	if errors.As(err, &redir) {
		// redir.Location == "/admin/mfa-required"
	}

The session cookie is kept in the client's cookie jar, so one Client is one
browser session.
*/
package gatesdk
