package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// HTML is optional; Text is recommended as fallback.
type EmailJob struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text,omitempty"`
	HTML    string `json:"html,omitempty"`
}

// WelcomeJob builds the registration welcome mail for a new account.
func WelcomeJob(to, username string, merchant bool) EmailJob {
	text := "Hi " + username + ", your CityMarket shopper account is ready. Log in and start browsing."
	if merchant {
		text = "Hi " + username + ", your CityMarket merchant account is ready. Log in and register your shop to start listing products."
	}
	return EmailJob{
		To:      to,
		Subject: "Welcome to CityMarket",
		Text:    text,
	}
}
