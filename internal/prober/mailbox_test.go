// internal/prober/mailbox_test.go
package prober

import (
	"testing"
	"time"

	"hostprobe/internal/testutil"
)

func TestMailboxPublishAndTake(t *testing.T) {
	mb := newMailbox()
	cert := testCertificate(t)

	err := mb.capture([][]byte{cert.Raw}, nil)
	testutil.AssertNoError(t, err, "capture never fails the handshake")

	got := mb.take(time.Second)
	testutil.AssertNotNil(t, got, "published certificate should be taken")
	testutil.AssertEqual(t, got.Subject.CommonName, cert.Subject.CommonName, "same certificate")
}

func TestMailboxFullSlotDropsNewcomer(t *testing.T) {
	mb := newMailbox()
	first := testCertificate(t)
	second := testCertificateNamed(t, "second.example.com")

	testutil.AssertNoError(t, mb.capture([][]byte{first.Raw}, nil), "first publish")
	// Slot is full: this publish must neither block nor replace.
	testutil.AssertNoError(t, mb.capture([][]byte{second.Raw}, nil), "second publish")

	got := mb.take(time.Second)
	testutil.AssertEqual(t, got.Subject.CommonName, first.Subject.CommonName, "first certificate wins")
}

func TestMailboxTakeTimesOut(t *testing.T) {
	mb := newMailbox()

	start := time.Now()
	got := mb.take(20 * time.Millisecond)

	testutil.AssertTrue(t, got == nil, "empty mailbox yields nil")
	testutil.AssertTrue(t, time.Since(start) >= 20*time.Millisecond, "take waits out its deadline")
}

func TestMailboxDrain(t *testing.T) {
	mb := newMailbox()
	cert := testCertificate(t)

	testutil.AssertNoError(t, mb.capture([][]byte{cert.Raw}, nil), "publish")
	mb.drain()

	testutil.AssertTrue(t, mb.take(10*time.Millisecond) == nil, "drained mailbox is empty")

	// Draining an empty mailbox must not block.
	mb.drain()
}

func TestMailboxIgnoresGarbage(t *testing.T) {
	mb := newMailbox()

	testutil.AssertNoError(t, mb.capture(nil, nil), "no raw certs")
	testutil.AssertNoError(t, mb.capture([][]byte{{0x01, 0x02}}, nil), "unparseable DER")
	testutil.AssertTrue(t, mb.take(10*time.Millisecond) == nil, "nothing was published")
}
