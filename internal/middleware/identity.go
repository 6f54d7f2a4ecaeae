package middleware

// identity.go resolves the account identity for a realtime connection.  The
// WebSocket handshake carries the access token either as a ?token= query
// parameter (browsers cannot set headers on WebSocket upgrades) or as a
// standard Bearer header.  Identity is optional on this path: a missing or
// invalid token yields an empty account id and the coordinator degrades all
// mutating operations from that connection to no-ops.

import (
    "strconv"
    "strings"

    "github.com/golang-jwt/jwt/v5"
    "github.com/labstack/echo/v4"
)

// AccountID extracts the authenticated account identifier from the request,
// or returns "" when no valid token is present.
func AccountID(c echo.Context, secret string) string {
    raw := c.QueryParam("token")
    if raw == "" {
        auth := c.Request().Header.Get("Authorization")
        if strings.HasPrefix(auth, "Bearer ") {
            raw = strings.TrimPrefix(auth, "Bearer ")
        }
    }
    if raw == "" {
        return ""
    }
    return accountFromToken(raw, secret)
}

// accountFromToken parses an HS256 JWT and returns its subject claim as a
// string.  Any parse or validation failure resolves to "".
func accountFromToken(raw, secret string) string {
    tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
        if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
            return nil, jwt.ErrSignatureInvalid
        }
        return []byte(secret), nil
    })
    if err != nil || !tok.Valid {
        return ""
    }
    claims, ok := tok.Claims.(jwt.MapClaims)
    if !ok {
        return ""
    }
    // The sub claim is a string for most issuers but arrives as a float64
    // when the issuer encoded a numeric user id.
    switch v := claims["sub"].(type) {
    case string:
        return v
    case float64:
        return strconv.FormatUint(uint64(v), 10)
    }
    return ""
}
