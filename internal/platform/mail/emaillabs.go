package mail

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	checkoutports "github.com/00kaito/DevBytes/contexts/commerce/checkout-service/ports"
	accountports "github.com/00kaito/DevBytes/contexts/identity-access/account-service/ports"
)

const defaultAPIURL = "https://api.emaillabs.net.pl/api/sendmail"

// Sender delivers transactional mail through the EmailLabs REST API.
// Callers treat delivery as best-effort: failures are returned for logging
// but must never fail the surrounding request.
type Sender struct {
	AppKey      string
	SecretKey   string
	FromEmail   string
	FromName    string
	SMTPAccount string
	SiteBaseURL string
	APIURL      string
	Client      *http.Client
	Logger      *slog.Logger
}

func NewSender(appKey, secretKey, fromEmail, smtpAccount, siteBaseURL string, logger *slog.Logger) *Sender {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sender{
		AppKey:      appKey,
		SecretKey:   secretKey,
		FromEmail:   fromEmail,
		FromName:    "DevBytes",
		SMTPAccount: smtpAccount,
		SiteBaseURL: strings.TrimRight(siteBaseURL, "/"),
		APIURL:      defaultAPIURL,
		Client:      &http.Client{Timeout: 10 * time.Second},
		Logger:      logger,
	}
}

func (s *Sender) SendVerificationEmail(ctx context.Context, msg accountports.VerificationEmail) error {
	link := fmt.Sprintf("%s/verify-email?token=%s", s.SiteBaseURL, url.QueryEscape(msg.Token))
	subject := "Potwierdź swój adres email - DevBytes"
	html := fmt.Sprintf(
		`<p>Cześć %s!</p><p>Dziękujemy za rejestrację w DevBytes. Aby dokończyć rejestrację, kliknij poniższy link:</p><p><a href="%s">Potwierdź email</a></p><p>Link jest ważny przez 24 godziny.</p>`,
		msg.FirstName, link,
	)
	text := fmt.Sprintf("Cześć %s!\n\nAby dokończyć rejestrację w DevBytes, wejdź na: %s\n\nLink jest ważny przez 24 godziny.", msg.FirstName, link)
	return s.send(ctx, msg.To, subject, html, text, "verification")
}

func (s *Sender) SendPasswordResetEmail(ctx context.Context, msg accountports.PasswordResetEmail) error {
	link := fmt.Sprintf("%s/reset-password?token=%s", s.SiteBaseURL, url.QueryEscape(msg.Token))
	subject := "Reset hasła - DevBytes"
	html := fmt.Sprintf(
		`<p>Cześć %s!</p><p>Otrzymaliśmy prośbę o reset hasła. Kliknij poniższy link aby ustawić nowe hasło:</p><p><a href="%s">Zresetuj hasło</a></p><p>Link jest ważny przez 1 godzinę.</p>`,
		msg.FirstName, link,
	)
	text := fmt.Sprintf("Cześć %s!\n\nAby zresetować hasło w DevBytes, wejdź na: %s\n\nLink jest ważny przez 1 godzinę.", msg.FirstName, link)
	return s.send(ctx, msg.To, subject, html, text, "password_reset")
}

func (s *Sender) SendReceipt(ctx context.Context, msg checkoutports.ReceiptEmail) error {
	subject := "Potwierdzenie zakupu - DevBytes"
	amount := fmt.Sprintf("%d,%02d %s", msg.AmountCents/100, msg.AmountCents%100, strings.ToUpper(msg.Currency))
	html := fmt.Sprintf(
		`<p>Cześć %s!</p><p>Dziękujemy za zakup podcastu <strong>%s</strong> (%s).</p><p>Nagranie znajdziesz w swojej bibliotece.</p>`,
		msg.FirstName, msg.PodcastTitle, amount,
	)
	text := fmt.Sprintf("Cześć %s!\n\nDziękujemy za zakup podcastu %q (%s). Nagranie znajdziesz w swojej bibliotece.", msg.FirstName, msg.PodcastTitle, amount)
	return s.send(ctx, msg.To, subject, html, text, "receipt")
}

func (s *Sender) send(ctx context.Context, to, subject, html, text, kind string) error {
	toField, err := json.Marshal(map[string]map[string]string{
		to: {"message_id": fmt.Sprintf("%s_%d", kind, time.Now().UnixNano())},
	})
	if err != nil {
		return err
	}

	form := url.Values{}
	form.Set("from", s.FromEmail)
	form.Set("from_name", s.FromName)
	form.Set("to", string(toField))
	form.Set("subject", subject)
	form.Set("smtp_account", s.SMTPAccount)
	form.Set("html", html)
	form.Set("text", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.APIURL, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	credentials := base64.StdEncoding.EncodeToString([]byte(s.AppKey + ":" + s.SecretKey))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Basic "+credentials)

	resp, err := s.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		s.Logger.Error("emaillabs send failed",
			"event", "mail_send_failed",
			"module", "internal/platform/mail",
			"layer", "platform",
			"kind", kind,
			"status", resp.StatusCode,
			"body", string(body),
		)
		return fmt.Errorf("emaillabs send: status %d", resp.StatusCode)
	}

	s.Logger.Info("mail sent",
		"event", "mail_sent",
		"module", "internal/platform/mail",
		"layer", "platform",
		"kind", kind,
	)
	return nil
}
