package handlers

import (
	userRepo "flexspace/database/repository/user"
)

// HandlerBundle groups the HTTP handlers and the dependencies route
// registration needs (the user repository backs the auth middleware).
type HandlerBundle struct {
	UserRepo userRepo.UserRepository

	Users      *UserHandler
	Facilities *FacilityHandler
	Bookings   *BookingHandler
	Programs   *ProgramHandler
	Admin      *AdminHandler
	Storage    *StorageHandler
}
