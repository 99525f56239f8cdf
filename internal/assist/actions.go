package assist

import (
	"context"
	"fmt"
	"time"

	"braill/internal/contacts"
	"braill/internal/timeparse"
)

// The action methods degrade every failure to a spoken message; the returned
// error only feeds logs and the command-outcome events of the front ends.

func (c *Controller) emergency(ctx context.Context) error {
	l := c.Language()
	c.say(ctx, l.EmergencyDetected())

	if !c.phone.Connected() {
		c.say(ctx, l.CallManually())
		return fmt.Errorf("phone not connected")
	}

	target := c.contacts.Emergency()
	if target.Number == "" {
		c.say(ctx, l.CallManually())
		return fmt.Errorf("no emergency number configured")
	}

	if err := c.phone.Call(ctx, target.Number); err != nil {
		c.say(ctx, l.TroubleCalling())
		return fmt.Errorf("emergency call: %w", err)
	}

	time.Sleep(2 * time.Second)
	if err := c.phone.SendSMS(ctx, target.Number, "EMERGENCY! I need help!"); err != nil {
		c.say(ctx, l.TroubleCalling())
		return fmt.Errorf("emergency sms: %w", err)
	}

	c.say(ctx, l.CallingNow())
	return nil
}

func (c *Controller) addReminder(ctx context.Context) error {
	l := c.Language()

	c.say(ctx, l.AskMedicine())
	medicine := c.hear(ctx)
	if medicine == "" {
		c.say(ctx, l.DidntHear())
		return fmt.Errorf("no medicine heard")
	}

	c.say(ctx, l.AskTime())
	timeText := c.hear(ctx)
	if timeText == "" {
		c.say(ctx, l.DidntHearTime())
		return fmt.Errorf("no time heard")
	}

	clock, err := timeparse.Parse(timeText)
	if err != nil {
		c.say(ctx, l.TimeNotUnderstood())
		return fmt.Errorf("parse %q: %w", timeText, err)
	}

	if _, err := c.reminders.Add(medicine, clock.Hour, clock.Minute); err != nil {
		c.logger.Error("failed to save reminder", "err", err)
		c.say(ctx, l.ReminderSaveFailed())
		return fmt.Errorf("save reminder: %w", err)
	}

	c.say(ctx, l.ReminderSet(medicine, clock.Display()))
	return nil
}

func (c *Controller) saveNote(ctx context.Context) error {
	l := c.Language()

	c.say(ctx, l.AskNote())
	text := c.hear(ctx)
	if text == "" {
		c.say(ctx, l.DidntHearAnything())
		return fmt.Errorf("no note heard")
	}

	if _, err := c.notes.Add(text); err != nil {
		c.logger.Error("failed to save note", "err", err)
		return fmt.Errorf("save note: %w", err)
	}

	c.say(ctx, l.NoteSaved())
	return nil
}

func (c *Controller) readNotes(ctx context.Context) error {
	l := c.Language()

	all := c.notes.List()
	switch {
	case len(all) == 0:
		c.say(ctx, l.NoNotes())
	case len(all) == 1:
		c.say(ctx, l.OneNote(all[0].Text))
	default:
		c.say(ctx, l.NoteCount(len(all)))
		recent := all
		if len(recent) > 3 {
			recent = recent[len(recent)-3:]
		}
		for i, n := range recent {
			c.say(ctx, l.NoteItem(i+1, n.Text))
		}
	}
	return nil
}

func (c *Controller) clearNotes(ctx context.Context) error {
	l := c.Language()

	count := len(c.notes.List())
	if count == 0 {
		c.say(ctx, l.NoNotesToClear())
		return nil
	}

	c.say(ctx, l.ConfirmClearNotes(count))
	confirmation := c.hear(ctx)
	if !l.IsYes(confirmation) {
		c.say(ctx, l.KeepingNotes())
		return nil
	}

	if _, err := c.notes.Clear(); err != nil {
		c.logger.Error("failed to clear notes", "err", err)
		return fmt.Errorf("clear notes: %w", err)
	}
	c.say(ctx, l.NotesCleared())
	return nil
}

func (c *Controller) callContact(ctx context.Context, name string) error {
	l := c.Language()

	number, err := c.contacts.Lookup(name)
	if err != nil {
		c.say(ctx, l.NoSuchContact(name))
		return fmt.Errorf("call %q: %w", name, contacts.ErrUnknown)
	}
	if number == "" {
		c.say(ctx, l.NumberNotSet(name))
		return fmt.Errorf("call %q: number not set", name)
	}
	if !c.phone.Connected() {
		c.say(ctx, l.PhoneNotConnected())
		return fmt.Errorf("phone not connected")
	}

	c.say(ctx, l.Calling(name))
	if err := c.phone.Call(ctx, number); err != nil {
		c.say(ctx, l.CallFailed())
		return fmt.Errorf("call %q: %w", name, err)
	}
	return nil
}

func (c *Controller) sendMessage(ctx context.Context, name string) error {
	l := c.Language()

	number, err := c.contacts.Lookup(name)
	if err != nil {
		c.say(ctx, l.NoSuchContact(name))
		return fmt.Errorf("message %q: %w", name, contacts.ErrUnknown)
	}
	if number == "" {
		c.say(ctx, l.NumberNotSet(name))
		return fmt.Errorf("message %q: number not set", name)
	}

	c.say(ctx, l.AskMessage(name))
	message := c.hear(ctx)
	if message == "" {
		c.say(ctx, l.DidntHearMessage())
		return fmt.Errorf("no message heard")
	}

	if !c.phone.Connected() {
		c.say(ctx, l.PhoneNotConnected())
		return fmt.Errorf("phone not connected")
	}

	if err := c.phone.SendSMS(ctx, number, message); err != nil {
		c.say(ctx, l.MessageFailed())
		return fmt.Errorf("message %q: %w", name, err)
	}
	c.say(ctx, l.MessageSent())
	return nil
}

func (c *Controller) controlPhone(ctx context.Context, task string) error {
	l := c.Language()

	if !c.phone.Connected() {
		c.say(ctx, l.PhoneNotConnected())
		return fmt.Errorf("phone not connected")
	}

	c.say(ctx, l.DoingOnPhone())
	if err := c.phone.RunTask(ctx, task); err != nil {
		c.say(ctx, l.PhoneTrouble())
		return fmt.Errorf("phone task: %w", err)
	}
	c.say(ctx, l.PhoneDone())
	return nil
}
