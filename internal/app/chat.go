package app

import "io"

// runChat drives a chat session for user.
func (a *App) runChat(in io.Reader, out io.Writer, user string, prompt bool) error {
	if user == "" {
		user = a.cfg.Chat.User
	}
	mgr := a.Chat()
	sess, err := mgr.Session(user)
	if err != nil {
		return err
	}

	s := newSession("chat", in, out)
	s.prompt = prompt

	s.handle("send", "send <text>", "send a message", func(args string) error {
		msg, err := sess.Send(args)
		if err != nil {
			return err
		}
		s.printf("Sent: %s\n", msg)
		return nil
	})
	s.handle("undo", "undo", "unsend your last message", func(string) error {
		msg, err := sess.Undo()
		if err != nil {
			return err
		}
		s.printf("Unsent: %s\n", msg.Text)
		return nil
	})
	s.handle("redo", "redo", "send an unsent message again", func(string) error {
		msg, err := sess.Redo()
		if err != nil {
			return err
		}
		s.printf("Resent: %s\n", msg.Text)
		return nil
	})
	s.handle("deliver", "deliver <from> | <text>", "queue an incoming message", func(args string) error {
		from, text, ok := splitPair(args)
		if !ok {
			return usage("deliver <from> | <text>")
		}
		if _, err := mgr.Deliver(from, sess.User(), text); err != nil {
			return err
		}
		s.printf("Queued message from %s\n", from)
		return nil
	})
	s.handle("receive", "receive", "read queued messages", func(string) error {
		s.printf("Received %d message(s)\n", sess.ReceiveAll())
		return nil
	})
	s.handle("transcript", "transcript", "show the conversation", func(string) error {
		msgs := sess.Transcript()
		if len(msgs) == 0 {
			s.printf("(no messages)\n")
		}
		for _, msg := range msgs {
			s.printf("  %s\n", msg)
		}
		return nil
	})
	s.handle("state", "state", "show undo/redo state", func(string) error {
		s.printf("State: %s\n", sess.State())
		return nil
	})

	return s.run()
}

