package service

import (
	"fmt"
	"time"

	"github.com/a-h/templ"
)

func passwordResetEmailTemplate(username, resetURL, appName string, ttl time.Duration) (string, string) {
	subject := "Restablecer Contraseña"
	body := fmt.Sprintf(`<html>
  <body>
    <h2>Restablecer Contraseña - %s</h2>
    <p>Hola %s,</p>
    <p>Has solicitado restablecer tu contraseña. Haz clic en el siguiente enlace para continuar:</p>
    <a href="%s">Restablecer contraseña</a>
    <p>Este enlace expirará en %s.</p>
    <p>Si no solicitaste esto, ignora este correo.</p>
  </body>
</html>`, templ.EscapeString(appName), templ.EscapeString(username), templ.EscapeString(resetURL), expiryText(ttl))

	return subject, body
}

// expiryText renders a TTL the way the emails phrase it ("1 hora", "30 minutos").
func expiryText(ttl time.Duration) string {
	if ttl >= time.Hour && ttl%time.Hour == 0 {
		hours := int(ttl / time.Hour)
		if hours == 1 {
			return "1 hora"
		}
		return fmt.Sprintf("%d horas", hours)
	}
	minutes := int(ttl / time.Minute)
	if minutes == 1 {
		return "1 minuto"
	}
	return fmt.Sprintf("%d minutos", minutes)
}
