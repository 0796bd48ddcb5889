package pointer

// Extract returns the document coordinates of an event.
//
// Touch events use the first changed touch point, then the first active
// touch point, then the origin. A nil event yields the origin.
func Extract(ev *Event) Coordinates {
	if ev == nil {
		return Coordinates{}
	}

	if ev.Device == DeviceTouch {
		if len(ev.ChangedTouches) > 0 {
			return ev.ChangedTouches[0].Coordinates()
		}
		if len(ev.Touches) > 0 {
			return ev.Touches[0].Coordinates()
		}
		return Coordinates{}
	}

	return Coordinates{X: ev.X, Y: ev.Y}
}
