package constants

// Обменник уведомлений
const (
	ExchangeNotifications     = "notifications"
	ExchangeNotificationsType = "topic"
)

// Очереди
const (
	QueueVerificationEmails = "verification_emails"
)

// Ключи маршрутизации
const (
	RoutingKeyVerificationEmail = "email.verification"
)

const (
	RetryExchangeVerificationEmails = QueueVerificationEmails + "_retry_ex"
	RetryQueueVerificationEmails    = QueueVerificationEmails + "_retry_wait_30s"
	RetryTTLVerificationEmails      = 30000 // мс
	MaxEmailRetries                 = 3

	FinalDLXExchange   = "notifications_final_dlx"
	FinalDLQ           = "notifications_final_dlq"
	FinalDLQRoutingKey = "notifications.dlq.key"
)
