package constants

// 包裹状态常量（规范化后的内部状态枚举）
const (
	ShipmentStatusPending          = "pending"
	ShipmentStatusInTransit        = "in_transit"
	ShipmentStatusOutForDelivery   = "out_for_delivery"
	ShipmentStatusDelivered        = "delivered"
	ShipmentStatusFailedAttempt    = "failed_attempt"
	ShipmentStatusException        = "exception"
	ShipmentStatusReturnInProgress = "return_in_progress"
	ShipmentStatusReturnDelivered  = "return_delivered"
)

// KnownShipmentStatuses 返回全部已知包裹状态
// 说明：规范化器允许产生枚举之外的透传状态，该列表仅用于展示和手动改写。
func KnownShipmentStatuses() []string {
	return []string{
		ShipmentStatusPending,
		ShipmentStatusInTransit,
		ShipmentStatusOutForDelivery,
		ShipmentStatusDelivered,
		ShipmentStatusFailedAttempt,
		ShipmentStatusException,
		ShipmentStatusReturnInProgress,
		ShipmentStatusReturnDelivered,
	}
}

// 退款状态常量
const (
	RefundStatusRequested = "requested"
	RefundStatusApproved  = "approved"
	RefundStatusPaid      = "paid"
	RefundStatusDenied    = "denied"
)

// 质保维权状态常量
const (
	ClaimStatusInitiated            = "initiated"
	ClaimStatusItemSent             = "item_sent"
	ClaimStatusItemReceivedBySeller = "item_received_by_seller"
	ClaimStatusResolutionOffered    = "resolution_offered"
	ClaimStatusResolvedClosed       = "resolved_closed"
	ClaimStatusDenied               = "denied"
)

// 队列名称常量
const (
	QueueDefault = "default"
)

// 异步任务类型常量
const (
	TaskNotificationDispatch = "notification:dispatch"
	TaskTrackerRegister      = "tracker:register"
)

// 设置项键名常量（settings 表）
const (
	SettingKeyIntegrations = "integrations"

	SettingFieldShip24APIKey     = "ship24_api_key"
	SettingFieldTelegramBotToken = "telegram_bot_token"
	SettingFieldTelegramChatID   = "telegram_chat_id"
	SettingFieldNotifyWebhookURL = "notify_webhook_url"
)
