/*
 * MIT License
 *
 * Copyright (c) 2022-2025 Arsene Tochemey Gandote
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
 */

package supervisor

// RestartPolicy tells when a child should be restarted.
//
// The policy is carried by ChildSpec and reported in logs. It is not enforced
// yet: every failed child is restarted, whatever its policy.
type RestartPolicy int

const (
	// Transient children are meant to be restarted only after an abnormal termination
	Transient RestartPolicy = iota
	// Persistent children are meant to be restarted whatever the reason they terminated
	Persistent
	// Temporary children are meant to never be restarted
	Temporary
)

// String returns the string representation of the restart policy
func (p RestartPolicy) String() string {
	switch p {
	case Transient:
		return "Transient"
	case Persistent:
		return "Persistent"
	case Temporary:
		return "Temporary"
	default:
		return ""
	}
}

// ShutdownPolicy tells how a child should be stopped. Like RestartPolicy it is
// carried but not enforced: children are always released and awaited.
type ShutdownPolicy int

const (
	// Eventually lets the child drain its mailbox before it closes
	Eventually ShutdownPolicy = iota
	// Immediately stops the child after its current message
	Immediately
	// Brute stops the child without waiting
	Brute
)

// String returns the string representation of the shutdown policy
func (p ShutdownPolicy) String() string {
	switch p {
	case Eventually:
		return "Eventually"
	case Immediately:
		return "Immediately"
	case Brute:
		return "Brute"
	default:
		return ""
	}
}

// ChildKind tells whether a child is a worker or a supervisor itself
type ChildKind int

const (
	// WorkerChild is a leaf actor
	WorkerChild ChildKind = iota
	// SupervisorChild is a nested supervisor
	SupervisorChild
)

// String returns the string representation of the child kind
func (k ChildKind) String() string {
	switch k {
	case WorkerChild:
		return "Worker"
	case SupervisorChild:
		return "Supervisor"
	default:
		return ""
	}
}
