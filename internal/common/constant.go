package common

// SessionCookieName is the cookie that carries the signed session token.
const SessionCookieName = "session"

// QuestionDelimiter joins generated questions into a single stored column.
const QuestionDelimiter = "||"
