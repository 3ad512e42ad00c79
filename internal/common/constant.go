package common

// SessionRecordKey is the fixed key under which the console persists the
// serialized session user in its local state store. It mirrors the
// application namespace used by earlier builds so existing sessions survive
// upgrades.
const SessionRecordKey = "imararent_user"

// AuthorizationHeaderName carries the bearer access token on API requests.
const AuthorizationHeaderName = "Authorization"
