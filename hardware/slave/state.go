// This file is part of i2cslave.
//
// i2cslave is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// i2cslave is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with i2cslave.  If not, see <https://www.gnu.org/licenses/>.

package slave

// State of the protocol state machine.
type State int

// List of valid State values.
//
// Each ACK is sequenced by three states. The first waits for SCL to go low
// after the eighth bit, the second pulls SDA low and waits for SCL to go high,
// and the third holds SDA low and waits for SCL to go low again.
const (
	WaitStart State = iota
	RcvAddress
	AckAddress0
	AckAddress1
	AckAddress2
	RcvOffset
	AckOffset0
	AckOffset1
	AckOffset2
	RcvData
	AckData0
	AckData1
	AckData2
	Read
	AckRead
	Pause
)

func (s State) String() string {
	switch s {
	case WaitStart:
		return "WAIT_START"
	case RcvAddress:
		return "RCV_ADDRESS"
	case AckAddress0:
		return "ACK_ADDRESS0"
	case AckAddress1:
		return "ACK_ADDRESS1"
	case AckAddress2:
		return "ACK_ADDRESS2"
	case RcvOffset:
		return "RCV_OFFSET"
	case AckOffset0:
		return "ACK_OFFSET0"
	case AckOffset1:
		return "ACK_OFFSET1"
	case AckOffset2:
		return "ACK_OFFSET2"
	case RcvData:
		return "RCV_DATA"
	case AckData0:
		return "ACK_DATA0"
	case AckData1:
		return "ACK_DATA1"
	case AckData2:
		return "ACK_DATA2"
	case Read:
		return "READ"
	case AckRead:
		return "ACK_READ"
	case Pause:
		return "PAUSE"
	}
	return "unknown state"
}

// transfer returns true if bits are being shifted in or out in this state.
func (s State) transfer() bool {
	switch s {
	case RcvAddress, RcvOffset, RcvData, Read:
		return true
	}
	return false
}

// acking returns true if the slave is pulling SDA low in this state.
func (s State) acking() bool {
	switch s {
	case AckAddress1, AckAddress2, AckOffset1, AckOffset2, AckData1, AckData2:
		return true
	}
	return false
}
