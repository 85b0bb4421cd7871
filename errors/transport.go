/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package errors

// Setup errors: returned by Connect/Bind before a Connection/Listener exists.
const (
	SetupInvalidInput CodeError = iota + MinPkgTransportSetup
	SetupSocketBind
	SetupSocketDial
)

// Receive errors: returned by Connection.Recv/TryRecv.
const (
	ReceiveDead CodeError = iota + MinPkgTransportReceive
	ReceiveBadPacket
)

// Send errors: returned by Connection.Send.
const (
	SendSocketWrite CodeError = iota + MinPkgTransportSend
)

// Backlog admission outcomes: not returned to callers (the protocol drops
// silently) but registered so logging/metrics can name them consistently.
const (
	BacklogDropFull CodeError = iota + MinPkgTransportBacklog
	BacklogDropTimeout
)

func init() {
	RegisterIdFctMessage(MinPkgTransportSetup, transportSetupMessage)
	RegisterIdFctMessage(MinPkgTransportReceive, transportReceiveMessage)
	RegisterIdFctMessage(MinPkgTransportSend, transportSendMessage)
	RegisterIdFctMessage(MinPkgTransportBacklog, transportBacklogMessage)
}

func transportSetupMessage(code CodeError) string {
	switch code {
	case SetupInvalidInput:
		return "no path addresses given"
	case SetupSocketBind:
		return "unable to bind local udp socket"
	case SetupSocketDial:
		return "unable to dial remote udp address"
	default:
		return UnknownMessage
	}
}

func transportReceiveMessage(code CodeError) string {
	switch code {
	case ReceiveDead:
		return "all paths closed, connection is dead"
	case ReceiveBadPacket:
		return "malformed header on received datagram"
	default:
		return UnknownMessage
	}
}

func transportSendMessage(code CodeError) string {
	switch code {
	case SendSocketWrite:
		return "unable to write datagram on selected path"
	default:
		return UnknownMessage
	}
}

func transportBacklogMessage(code CodeError) string {
	switch code {
	case BacklogDropFull:
		return "backlog table full, session dropped"
	case BacklogDropTimeout:
		return "backlog entry timed out before assembly completed"
	default:
		return UnknownMessage
	}
}
