package adapter

import (
	"fmt"
	"html"
	"time"
)

// Subjects of the messages sent by the server.
const (
	SubjectOTP          = "Código de Verificación OTP"
	SubjectTempPassword = "Credenciales de acceso temporales"
)

// OTPMessageBody renders the email carrying a one-time code.
func OTPMessageBody(code string, ttl time.Duration, maxAttempts int) string {
	return fmt.Sprintf(`<h2>Código de Verificación</h2>
<p>Tu código de verificación es:</p>
<h1 style="font-size: 32px; color: #4CAF50;">%s</h1>
<p>Este código expira en %d minutos.</p>
<p>Tienes %d intentos para ingresar el código correcto.</p>
`, html.EscapeString(code), int(ttl.Minutes()), maxAttempts)
}

// TempPasswordMessageBody renders the email carrying the temporary
// credential of a newly provisioned employee.
func TempPasswordMessageBody(name, email, password string) string {
	return fmt.Sprintf(`<h2>¡Bienvenido, %s!</h2>
<p>Se ha creado tu cuenta de empleado.</p>
<p>Usuario: <b>%s</b></p>
<p>Contraseña temporal: <b>%s</b></p>
<p>Deberás cambiar la contraseña en tu primer inicio de sesión.</p>
`, html.EscapeString(name), html.EscapeString(email), html.EscapeString(password))
}
