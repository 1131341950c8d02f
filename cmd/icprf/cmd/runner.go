package cmd

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/TheusHen/icprf/icprf/cprf"
	"github.com/TheusHen/icprf/icprf/identity"
	"github.com/TheusHen/icprf/icprf/prg"
	"github.com/TheusHen/icprf/icprf/protocol"
	"github.com/TheusHen/icprf/icprf/ratchet"
)

// runner executes the subcommands with one generator. Each implementation is
// an instantiation of generic, so the derivation loops themselves are not
// dispatched through an interface.
type runner interface {
	checksum(sk cprf.MasterSecret, n uint64) (byte, error)
	evaluate(sk cprf.MasterSecret, index uint64) (cprf.Node, error)
	constrain(w io.Writer, sk cprf.MasterSecret, constraint uint64, signer *identity.KeyPair) error
	disclose(w io.Writer, sk cprf.MasterSecret, from, count uint64) error
	seal(w io.Writer, sk cprf.MasterSecret, index uint64, message []byte) error
	verify(r io.Reader, out io.Writer, logger *logrus.Logger, trusted *identity.SignerID) (verifyResult, error)
}

var generators = map[string]runner{
	prg.ChaCha20{}.Name(): generic[prg.ChaCha20]{},
	prg.SHA512{}.Name():   generic[prg.SHA512]{},
	prg.BLAKE2b{}.Name():  generic[prg.BLAKE2b]{},
	prg.SHA3{}.Name():     generic[prg.SHA3]{},
}

func generatorNames() []string {
	names := make([]string, 0, len(generators))
	for name := range generators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type generic[P prg.PRG] struct {
	p P
}

// checksum xors the first byte of every secret below n.
func (g generic[P]) checksum(sk cprf.MasterSecret, n uint64) (byte, error) {
	f := cprf.New(g.p)
	var sum byte
	for i := uint64(0); i < n; i++ {
		secret, err := f.Evaluate(sk, i)
		if err != nil {
			return 0, err
		}
		sum ^= secret[0]
	}
	return sum, nil
}

func (g generic[P]) evaluate(sk cprf.MasterSecret, index uint64) (cprf.Node, error) {
	return cprf.New(g.p).Evaluate(sk, index)
}

// constrain writes a handover frame, signed when signer is set.
func (g generic[P]) constrain(w io.Writer, sk cprf.MasterSecret, constraint uint64, signer *identity.KeyPair) error {
	ck, err := cprf.New(g.p).Constrain(sk, constraint)
	if err != nil {
		return err
	}
	key, err := ck.MarshalBinary()
	if err != nil {
		return err
	}
	h := protocol.Handover{
		Generator:  g.p.Name(),
		Constraint: constraint,
		Key:        key,
	}
	if signer == nil {
		payload, err := protocol.EncodeHandover(h)
		if err != nil {
			return err
		}
		return protocol.WriteFrame(w, protocol.Frame{Type: protocol.MessageTypeHandover, Payload: payload})
	}
	payload, err := protocol.SignHandover(*signer, h)
	if err != nil {
		return err
	}
	return protocol.WriteFrame(w, protocol.Frame{Type: protocol.MessageTypeSignedHandover, Payload: payload})
}

func (g generic[P]) disclose(w io.Writer, sk cprf.MasterSecret, from, count uint64) error {
	chain, err := ratchet.ResumeChain(g.p, sk, from)
	if err != nil {
		return err
	}
	for i := uint64(0); i < count; i++ {
		d, err := chain.Next()
		if err != nil {
			return err
		}
		if err := protocol.WriteFrame(w, protocol.Frame{Type: protocol.MessageTypeDisclosure, Payload: d.Encode()}); err != nil {
			return err
		}
	}
	return nil
}

func (g generic[P]) seal(w io.Writer, sk cprf.MasterSecret, index uint64, message []byte) error {
	env, err := ratchet.NewChain(g.p, sk).Seal(index, message, nil)
	if err != nil {
		return err
	}
	return protocol.WriteFrame(w, protocol.Frame{Type: protocol.MessageTypeEnvelope, Payload: env.Encode()})
}

type verifyResult struct {
	Constraint  uint64
	Started     bool
	Disclosures int
	Opened      int
	Pending     int
}

// verify feeds a frame stream into a receiver. It stops at the first
// disclosure the receiver rejects. Envelopes are opened as soon as their
// index has been disclosed and their plaintext is written to out. With a
// trusted signer, only a handover signed by it may start the stream.
func (g generic[P]) verify(r io.Reader, out io.Writer, logger *logrus.Logger, trusted *identity.SignerID) (verifyResult, error) {
	var (
		res      verifyResult
		receiver = ratchet.NewReceiver(g.p)
		pending  []ratchet.Envelope
	)

	openReady := func() error {
		c, ok := receiver.Constraint()
		kept := pending[:0]
		for _, env := range pending {
			if !ok || env.Index > c {
				kept = append(kept, env)
				continue
			}
			pt, err := receiver.Open(env, nil)
			if err != nil {
				return fmt.Errorf("open envelope at %d: %w", env.Index, err)
			}
			res.Opened++
			if _, err := fmt.Fprintf(out, "%d: %s\n", env.Index, pt); err != nil {
				return err
			}
		}
		pending = kept
		return nil
	}

	for {
		frame, err := protocol.ReadFrame(r)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return res, err
		}

		switch frame.Type {
		case protocol.MessageTypeHandover, protocol.MessageTypeSignedHandover:
			if res.Started {
				return res, errors.New("handover after the stream started")
			}
			h, err := g.handover(frame, trusted)
			if err != nil {
				return res, err
			}
			var key cprf.ConstrainedKey[P]
			if err := key.UnmarshalBinary(h.Key); err != nil {
				return res, err
			}
			if receiver, err = ratchet.NewReceiverFromKey(g.p, &key, h.Constraint); err != nil {
				return res, err
			}
			res.Started = true
			logger.WithFields(logrus.Fields{
				"constraint": h.Constraint,
				"signed":     frame.Type == protocol.MessageTypeSignedHandover,
			}).Info("resumed from handover")

		case protocol.MessageTypeDisclosure:
			if trusted != nil && !res.Started {
				return res, errUnsignedStream
			}
			d, err := ratchet.DecodeDisclosure(frame.Payload)
			if err != nil {
				return res, err
			}
			if err := receiver.Provide(d); err != nil {
				logger.WithField("index", d.Index).WithError(err).Error("disclosure rejected")
				return res, err
			}
			res.Started = true
			res.Disclosures++
			logger.WithField("index", d.Index).Debug("disclosure accepted")

		case protocol.MessageTypeEnvelope:
			env, err := ratchet.DecodeEnvelope(frame.Payload)
			if err != nil {
				return res, err
			}
			pending = append(pending, env)

		default:
			logger.WithField("type", frame.Type).Warn("skipping unknown frame")
			continue
		}

		if err := openReady(); err != nil {
			return res, err
		}
	}

	res.Constraint, _ = receiver.Constraint()
	res.Pending = len(pending)
	if res.Pending > 0 {
		logger.WithField("count", res.Pending).Warn("envelopes left sealed")
	}
	return res, nil
}

var errUnsignedStream = errors.New("stream does not start with a signed handover")

// handover decodes a handover frame and checks it against the trusted signer
// and this runner's generator.
func (g generic[P]) handover(frame protocol.Frame, trusted *identity.SignerID) (protocol.Handover, error) {
	var (
		h   protocol.Handover
		err error
	)
	switch {
	case frame.Type == protocol.MessageTypeSignedHandover:
		var signer identity.SignerID
		if h, signer, err = protocol.OpenSignedHandover(frame.Payload); err != nil {
			return protocol.Handover{}, err
		}
		if trusted != nil && signer != *trusted {
			return protocol.Handover{}, fmt.Errorf("handover signed by %s, want %s", signer, trusted)
		}
	case trusted != nil:
		return protocol.Handover{}, errUnsignedStream
	default:
		if h, err = protocol.DecodeHandover(frame.Payload); err != nil {
			return protocol.Handover{}, err
		}
	}
	if h.Generator != g.p.Name() {
		return protocol.Handover{}, fmt.Errorf("handover for generator %q, verifying with %q", h.Generator, g.p.Name())
	}
	return h, nil
}
