package middleware

import "net/http"

// LimitBytes corta uploads acima do teto configurado; o ParseMultipartForm
// do handler devolve erro em vez de estourar memória.
func LimitBytes(max int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, max)
			}
			next.ServeHTTP(w, r)
		})
	}
}
