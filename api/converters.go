package api

import "strings"

// PersonFromToken builds the profile created on a user's first sign-in.
// fallbackNickname is used when the token carries no usable name.
func PersonFromToken(token ParsedToken, fallbackNickname string) Person {
	nickname := strings.TrimSpace(token.Name)
	if nickname == "" {
		nickname = strings.TrimSpace(strings.Join([]string{token.GivenName, token.FamilyName}, " "))
	}
	if nickname == "" {
		nickname = fallbackNickname
	}
	return Person{
		UserID:   token.Subject,
		Nickname: nickname,
		Email:    token.Email,
	}
}

// WithDefaults returns a copy of the club with optional collections defaulted
// so they serialize as empty arrays instead of null.
func (c Club) WithDefaults() Club {
	if c.ContentWarnings == nil {
		c.ContentWarnings = make([]string, 0)
	}
	return c
}
