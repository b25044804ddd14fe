package hal

// Board wiring.
const (
	PinButton uint8 = 23 // mode push-button, active low
	PinLEDR   uint8 = 18 // RGB LED red channel, driven by the PWM
	PinLEDG   uint8 = 19
	PinLEDB   uint8 = 21
)
