package checkoutevents

const (
	TopicName            = "checkout"
	orderCreatedName     = TopicName + ".orderCreated"
	orderCapturedName    = TopicName + ".orderCaptured"
	restartRequestedName = TopicName + ".restartRequested"
	checkoutFailedName   = TopicName + ".failed"
	redirectStartedName  = TopicName + ".redirected"
)

type OrderCreated struct {
	SessionUID    string
	OrderID       string
	AmountInCents int64
	Currency      string
}

func (e OrderCreated) GetEventTypeName() string {
	return orderCreatedName
}

func (e OrderCreated) GetAggregateName() string {
	return e.SessionUID
}

type OrderCaptured struct {
	SessionUID    string
	OrderID       string
	CaptureID     string
	CaptureStatus string
}

func (e OrderCaptured) GetEventTypeName() string {
	return orderCapturedName
}

func (e OrderCaptured) GetAggregateName() string {
	return e.SessionUID
}

// RestartRequested means the payment instrument was declined and the shopper has to pick another one
type RestartRequested struct {
	SessionUID string
	OrderID    string
}

func (e RestartRequested) GetEventTypeName() string {
	return restartRequestedName
}

func (e RestartRequested) GetAggregateName() string {
	return e.SessionUID
}

type CheckoutFailed struct {
	SessionUID string
	Flow       string
	Step       string
	ErrorKind  string
	Message    string
}

func (e CheckoutFailed) GetEventTypeName() string {
	return checkoutFailedName
}

func (e CheckoutFailed) GetAggregateName() string {
	return e.SessionUID
}

type RedirectStarted struct {
	SessionUID    string
	AmountInCents int64
	Currency      string
	RedirectURL   string
}

func (e RedirectStarted) GetEventTypeName() string {
	return redirectStartedName
}

func (e RedirectStarted) GetAggregateName() string {
	return e.SessionUID
}
