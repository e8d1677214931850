package callbacks

import tele "gopkg.in/telebot.v4"

const tokenKey = "cb_token"

// StoreToken attaches a decoded token to the Telebot context so handlers can
// read it without re-parsing the callback data.
func StoreToken(c tele.Context, t Token) {
	if c == nil {
		return
	}
	c.Set(tokenKey, t)
}

// TokenFrom returns the token stored by the callback router, or re-parses the
// callback data when the handler is invoked outside the router.
func TokenFrom(c tele.Context) (Token, bool) {
	if c == nil {
		return Token{}, false
	}
	if v := c.Get(tokenKey); v != nil {
		if t, ok := v.(Token); ok {
			return t, true
		}
	}
	cb := c.Callback()
	if cb == nil {
		return Token{}, false
	}
	return Parse(cb.Data)
}

// ArgInt64 returns the numeric argument of the stored token.
func ArgInt64(c tele.Context) (int64, bool) {
	t, ok := TokenFrom(c)
	if !ok || !t.HasArg() {
		return 0, false
	}
	return t.Arg, true
}
