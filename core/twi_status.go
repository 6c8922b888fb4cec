package core

// Raw two-wire bus status codes for master mode, as reported by the
// ATmega TWSR register with the prescaler bits masked out. The codes are
// defined by the bus controller datasheet and match avr-libc's <util/twi.h>.
const (
	TWStatusStart      = 0x08 // START condition transmitted
	TWStatusRepStart   = 0x10 // repeated START condition transmitted
	TWStatusMTSlaACK   = 0x18 // SLA+W transmitted, ACK received
	TWStatusMTSlaNACK  = 0x20 // SLA+W transmitted, NACK received
	TWStatusMTDataACK  = 0x28 // data transmitted, ACK received
	TWStatusMTDataNACK = 0x30 // data transmitted, NACK received
	TWStatusArbLost    = 0x38 // arbitration lost in SLA or data
	TWStatusMRSlaACK   = 0x40 // SLA+R transmitted, ACK received
	TWStatusMRSlaNACK  = 0x48 // SLA+R transmitted, NACK received
	TWStatusMRDataACK  = 0x50 // data received, ACK returned
	TWStatusMRDataNACK = 0x58 // data received, NACK returned
	TWStatusNoInfo     = 0xF8 // no relevant state information available
	TWStatusBusError   = 0x00 // illegal START or STOP condition
)

// BusEvent classifies a raw status code into the protocol event that the
// state machine reacts to.
type BusEvent uint8

const (
	// EventBusError covers every status code outside the expected master
	// mode set. It is never silently continued from.
	EventBusError BusEvent = iota

	// EventStartSent - a START condition has been transmitted.
	EventStartSent

	// EventRepeatedStartSent - a repeated START has been transmitted.
	EventRepeatedStartSent

	// EventAddressWriteACK - SLA+W was acknowledged by the slave.
	EventAddressWriteACK

	// EventAddressWriteNACK - SLA+W was not acknowledged.
	EventAddressWriteNACK

	// EventAddressReadACK - SLA+R was acknowledged. No data byte has been
	// received yet; reception of the first byte starts when the handler
	// arms ACK or NACK.
	EventAddressReadACK

	// EventAddressReadNACK - SLA+R was not acknowledged.
	EventAddressReadNACK

	// EventDataWriteACK - a transmitted data byte was acknowledged.
	EventDataWriteACK

	// EventDataWriteNACK - a transmitted data byte was not acknowledged.
	EventDataWriteNACK

	// EventDataReceivedACK - a data byte was received and the hardware
	// returned ACK.
	EventDataReceivedACK

	// EventDataReceivedNACK - a data byte was received and the hardware
	// returned NACK.
	EventDataReceivedNACK

	// EventArbitrationLost - bus arbitration was lost to another master.
	EventArbitrationLost
)

// DecodeStatus maps a raw bus status code to its protocol event. It is a
// pure classification; deciding whether the event is legal for the current
// transaction phase is the state machine's job.
func DecodeStatus(code uint8) BusEvent {
	switch code {
	case TWStatusStart:
		return EventStartSent
	case TWStatusRepStart:
		return EventRepeatedStartSent
	case TWStatusMTSlaACK:
		return EventAddressWriteACK
	case TWStatusMTSlaNACK:
		return EventAddressWriteNACK
	case TWStatusMTDataACK:
		return EventDataWriteACK
	case TWStatusMTDataNACK:
		return EventDataWriteNACK
	case TWStatusMRSlaACK:
		return EventAddressReadACK
	case TWStatusMRSlaNACK:
		return EventAddressReadNACK
	case TWStatusMRDataACK:
		return EventDataReceivedACK
	case TWStatusMRDataNACK:
		return EventDataReceivedNACK
	case TWStatusArbLost:
		return EventArbitrationLost
	default:
		return EventBusError
	}
}
