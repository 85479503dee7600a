package domain

// NotificationKind email template selector
type NotificationKind string

const (
	NotifyReservationConfirmation NotificationKind = "reservation_confirmation"
	NotifyDepositRequired         NotificationKind = "deposit_required"
	NotifyDepositConfirmation     NotificationKind = "deposit_confirmation"
	NotifyReviewRequest           NotificationKind = "review_request"
	NotifyReservationReminder     NotificationKind = "reservation_reminder"
	NotifyTableUpdate             NotificationKind = "table_update"
)

// ReservationNotificationData template fields shared by every reservation email
func ReservationNotificationData(r *Reservation) map[string]interface{} {
	return map[string]interface{}{
		"ReservationID": r.ID.String(),
		"CustomerName":  r.CustomerName,
		"PartySize":     r.PartySize,
		"Date":          r.Date.Format(DateFormat),
		"Time":          r.Time.String(),
		"TableIDs":      r.TableIDs,
	}
}
