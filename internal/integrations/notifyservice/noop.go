package notifyservice

// NoopPublisher используется, когда сервис уведомлений отключён в конфигурации
type NoopPublisher struct{}

// PublishEventAsync ничего не делает
func (NoopPublisher) PublishEventAsync(_ *AppointmentEvent) {}
