package vcon

import "regexp"

// Version is the vCon format version literal carried in the "vcon" field.
// Documents from newer format revisions may carry literals this library does
// not know; they decode fine and report Known() == false.
type Version string

const Version002 Version = "0.0.2"

var semverish = regexp.MustCompile(`^\d+\.\d+\.\d+$`)

func (v Version) Known() bool {
	return v == Version002
}

// Wellformed reports whether the literal is MAJOR.MINOR.PATCH shaped,
// independent of whether this library recognises it.
func (v Version) Wellformed() bool {
	return semverish.MatchString(string(v))
}

// Encoding describes how an inline body is encoded.
type Encoding string

const (
	EncodingBase64URL Encoding = "base64url"
	EncodingJSON      Encoding = "json"
	EncodingNone      Encoding = "none"
)

func (e Encoding) Known() bool {
	switch e {
	case EncodingBase64URL, EncodingJSON, EncodingNone:
		return true
	}
	return false
}

// DialogType classifies a dialog entry.
type DialogType string

const (
	DialogRecording  DialogType = "recording"
	DialogText       DialogType = "text"
	DialogTransfer   DialogType = "transfer"
	DialogIncomplete DialogType = "incomplete"
)

func (t DialogType) Known() bool {
	switch t {
	case DialogRecording, DialogText, DialogTransfer, DialogIncomplete:
		return true
	}
	return false
}

// Disposition records why an incomplete dialog did not complete.
type Disposition string

const (
	DispositionNoAnswer           Disposition = "no-answer"
	DispositionCongestion         Disposition = "congestion"
	DispositionFailed             Disposition = "failed"
	DispositionBusy               Disposition = "busy"
	DispositionHungUp             Disposition = "hung-up"
	DispositionVoicemailNoMessage Disposition = "voicemail-no-message"
)

func (d Disposition) Known() bool {
	switch d {
	case DispositionNoAnswer, DispositionCongestion, DispositionFailed,
		DispositionBusy, DispositionHungUp, DispositionVoicemailNoMessage:
		return true
	}
	return false
}

// PartyEvent is one entry kind in a dialog's party history.
type PartyEvent string

const (
	PartyEventJoin   PartyEvent = "join"
	PartyEventDrop   PartyEvent = "drop"
	PartyEventHold   PartyEvent = "hold"
	PartyEventUnhold PartyEvent = "unhold"
	PartyEventMute   PartyEvent = "mute"
	PartyEventUnmute PartyEvent = "unmute"
)

func (e PartyEvent) Known() bool {
	switch e {
	case PartyEventJoin, PartyEventDrop, PartyEventHold,
		PartyEventUnhold, PartyEventMute, PartyEventUnmute:
		return true
	}
	return false
}
