package handlers

// HandlerBundle groups the endpoint handlers registered by routes.
type HandlerBundle struct {
	Auth    *AuthHandler
	Catalog *CatalogHandler
	Admin   *AdminHandler
	Wizard  *WizardHandler
	Booking *BookingHandler
}
