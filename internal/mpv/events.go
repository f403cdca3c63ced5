package mpv

import "unsafe"

// EventID is a libmpv mpv_event_id. Only the enable/disable boundary lives
// here; reading events is left to the caller.
type EventID int

const (
	EventShutdown            EventID = 1
	EventLogMessage          EventID = 2
	EventGetPropertyReply    EventID = 3
	EventSetPropertyReply    EventID = 4
	EventCommandReply        EventID = 5
	EventStartFile           EventID = 6
	EventEndFile             EventID = 7
	EventFileLoaded          EventID = 8
	EventTracksChanged       EventID = 9  // deprecated
	EventTrackSwitched       EventID = 10 // deprecated
	EventIdle                EventID = 11
	EventPause               EventID = 12 // deprecated
	EventUnpause             EventID = 13 // deprecated
	EventTick                EventID = 14
	EventScriptInputDispatch EventID = 15 // deprecated
	EventClientMessage       EventID = 16
	EventVideoReconfig       EventID = 17
	EventAudioReconfig       EventID = 18
	EventMetadataUpdate      EventID = 19 // deprecated
	EventSeek                EventID = 20
	EventPlaybackRestart     EventID = 21
	EventPropertyChange      EventID = 22
	EventChapterChange       EventID = 23 // deprecated
	EventQueueOverflow       EventID = 24
	EventHook                EventID = 25
)

var deprecatedEvents = []EventID{
	EventTracksChanged,
	EventTrackSwitched,
	EventPause,
	EventUnpause,
	EventScriptInputDispatch,
	EventMetadataUpdate,
	EventChapterChange,
}

func (e EventID) deprecated() bool {
	for _, d := range deprecatedEvents {
		if e == d {
			return true
		}
	}
	return false
}

func (m *Mpv) requestEvent(ev EventID, enable bool) error {
	flag := 0
	if enable {
		flag = 1
	}
	return m.h.do(func(ctx unsafe.Pointer) error {
		return check(m.h.lib.RequestEvent(ctx, int(ev), flag))
	})
}

// EnableEvent asks libmpv to deliver ev.
func (m *Mpv) EnableEvent(ev EventID) error {
	return m.requestEvent(ev, true)
}

// DisableEvent asks libmpv to stop delivering ev.
func (m *Mpv) DisableEvent(ev EventID) error {
	return m.requestEvent(ev, false)
}

// EnableAllEvents enables every event that is not deprecated.
func (m *Mpv) EnableAllEvents() error {
	for ev := EventShutdown; ev <= EventHook; ev++ {
		if ev.deprecated() {
			continue
		}
		if err := m.EnableEvent(ev); err != nil {
			return err
		}
	}
	return nil
}

// DisableDeprecatedEvents disables the events libmpv only keeps for
// compatibility.
func (m *Mpv) DisableDeprecatedEvents() error {
	for _, ev := range deprecatedEvents {
		if err := m.DisableEvent(ev); err != nil {
			return err
		}
	}
	return nil
}

// DisableAllEvents disables every event.
func (m *Mpv) DisableAllEvents() error {
	for ev := EventShutdown; ev <= EventHook; ev++ {
		if err := m.DisableEvent(ev); err != nil {
			return err
		}
	}
	return nil
}
