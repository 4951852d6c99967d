// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 QuizCard Contributors

package web

import (
	"net/http"

	"golang.org/x/text/language"

	"github.com/quizcard/credcheck/internal/credential"
)

// LangParam is the query parameter that overrides Accept-Language.
const LangParam = "lang"

// requestLocale picks the message locale for r, or fallback when the
// request names none.
func requestLocale(r *http.Request, fallback language.Tag) language.Tag {
	if lang := r.URL.Query().Get(LangParam); lang != "" {
		return credential.ParseLocale(lang)
	}
	if accept := r.Header.Get("Accept-Language"); accept != "" {
		return credential.ParseLocale(accept)
	}
	return fallback
}
