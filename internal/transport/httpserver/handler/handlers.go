package handler

import (
	commonhandler "pocketcart/internal/transport/httpserver/handler/common"
	listshandler "pocketcart/internal/transport/httpserver/handler/lists"
	tripshandler "pocketcart/internal/transport/httpserver/handler/trips"
)

type Handlers struct {
	Common *commonhandler.Handlers
	Lists  *listshandler.Handlers
	Trips  *tripshandler.Handlers
}

func New(common *commonhandler.Handlers, lists *listshandler.Handlers, trips *tripshandler.Handlers) *Handlers {
	return &Handlers{
		Common: common,
		Lists:  lists,
		Trips:  trips,
	}
}
