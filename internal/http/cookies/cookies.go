// Package cookies задаёт единые параметры сессионных cookie.
// Оба токена выставляются HttpOnly; Secure управляется конфигом,
// чтобы локальная разработка без TLS оставалась возможной.
package cookies

import "net/http"

// Set выставляет сессионную cookie с токеном.
func Set(w http.ResponseWriter, name, value string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// Clear стирает сессионную cookie.
func Clear(w http.ResponseWriter, name string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	})
}
