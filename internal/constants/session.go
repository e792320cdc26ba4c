package constants

// SessionCookieName - cookie анонимной сессии для списка недавно просмотренных
const SessionCookieName = "campus_stay_session"

// TraceIDHeader - заголовок сквозного идентификатора запроса
const TraceIDHeader = "X-Trace-ID"
