package email

// Dispatcher определяет интерфейс отправки писем.
// Доставка best-effort: вызывающая сторона не получает гарантий доставки.
type Dispatcher interface {
	Send(to, subject, body string) error
}
