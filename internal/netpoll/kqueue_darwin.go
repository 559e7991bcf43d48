//go:build darwin

package netpoll

import (
	"golang.org/x/sys/unix"
)

type kqueuePoller struct {
	kq int
	// interest tracks the last-registered interest per fd since kqueue
	// needs an explicit EV_DELETE/EV_ADD pair per filter rather than a
	// single combined "modify" call.
	interest map[int]Interest
}

// Open creates the platform readiness backend: kqueue on Darwin.
func Open() (Poller, error) {
	kq, err := unix.Kqueue()
	if err != nil {
		return nil, err
	}
	return &kqueuePoller{kq: kq, interest: make(map[int]Interest)}, nil
}

func (p *kqueuePoller) apply(fd int, from, to Interest) error {
	var changes []unix.Kevent_t
	if from&Readable != 0 && to&Readable == 0 {
		changes = append(changes, mkEvent(fd, unix.EVFILT_READ, unix.EV_DELETE))
	}
	if to&Readable != 0 && from&Readable == 0 {
		changes = append(changes, mkEvent(fd, unix.EVFILT_READ, unix.EV_ADD))
	}
	if from&Writable != 0 && to&Writable == 0 {
		changes = append(changes, mkEvent(fd, unix.EVFILT_WRITE, unix.EV_DELETE))
	}
	if to&Writable != 0 && from&Writable == 0 {
		changes = append(changes, mkEvent(fd, unix.EVFILT_WRITE, unix.EV_ADD))
	}
	if len(changes) == 0 {
		return nil
	}
	_, err := unix.Kevent(p.kq, changes, nil, nil)
	return err
}

func mkEvent(fd int, filter int16, flags uint16) unix.Kevent_t {
	return unix.Kevent_t{Ident: uint64(fd), Filter: filter, Flags: flags}
}

func (p *kqueuePoller) Register(fd int, interest Interest) error {
	if err := p.apply(fd, 0, interest); err != nil {
		return err
	}
	p.interest[fd] = interest
	return nil
}

func (p *kqueuePoller) Modify(fd int, interest Interest) error {
	if err := p.apply(fd, p.interest[fd], interest); err != nil {
		return err
	}
	p.interest[fd] = interest
	return nil
}

func (p *kqueuePoller) Remove(fd int) error {
	if err := p.apply(fd, p.interest[fd], 0); err != nil {
		return err
	}
	delete(p.interest, fd)
	return nil
}

func (p *kqueuePoller) Wait(timeoutMs int) ([]Event, error) {
	var ts *unix.Timespec
	if timeoutMs >= 0 {
		t := unix.NsecToTimespec(int64(timeoutMs) * int64(1000000))
		ts = &t
	}
	raw := make([]unix.Kevent_t, 8)
	n, err := unix.Kevent(p.kq, nil, raw, ts)
	if err != nil {
		if err == unix.EINTR {
			return nil, nil
		}
		return nil, err
	}
	byFd := make(map[int]*Event)
	order := make([]int, 0, n)
	for i := 0; i < n; i++ {
		e := raw[i]
		fd := int(e.Ident)
		ev, ok := byFd[fd]
		if !ok {
			ev = &Event{Fd: fd}
			byFd[fd] = ev
			order = append(order, fd)
		}
		switch e.Filter {
		case unix.EVFILT_READ:
			ev.Readable = true
		case unix.EVFILT_WRITE:
			ev.Writable = true
		}
		if e.Flags&unix.EV_EOF != 0 {
			ev.Hup = true
		}
		if e.Flags&unix.EV_ERROR != 0 {
			ev.Err = true
		}
	}
	events := make([]Event, 0, len(order))
	for _, fd := range order {
		events = append(events, *byFd[fd])
	}
	return events, nil
}

func (p *kqueuePoller) Close() error {
	return unix.Close(p.kq)
}
