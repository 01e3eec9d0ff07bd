package registration

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardano2vn/group-signup/config"
	"github.com/cardano2vn/group-signup/internal/roster"
	"github.com/cardano2vn/group-signup/internal/storage"
	"github.com/cardano2vn/group-signup/models"
)

type stubVerifier struct {
	ok    bool
	err   error
	calls int
}

func (s *stubVerifier) Verify(ctx context.Context, token, remoteIP string) (bool, error) {
	s.calls++
	return s.ok, s.err
}

func testConfig() *config.Config {
	return &config.Config{
		Groups:              []string{"A", "B"},
		MaxStudentsPerGroup: 2,
	}
}

func newService(store *storage.MemoryStore, v *stubVerifier, cfg *config.Config) *Service {
	return New(store, roster.New(store, nil, cfg), v, cfg)
}

func validCandidate() Candidate {
	return Candidate{
		Name:   "Nguyen Van An",
		Email:  "an@example.com",
		Phone:  "0123456789",
		School: "HUST",
		Group:  "A",
	}
}

func TestRegisterSuccessAppendsRow(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := newService(store, &stubVerifier{ok: true}, testConfig())

	err := svc.Register(context.Background(), validCandidate())
	require.NoError(t, err)

	students, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, models.Registration{
		Name:   "Nguyen Van An",
		Email:  "an@example.com",
		Phone:  "0123456789",
		School: "HUST",
		Group:  "A",
	}, students[0])
}

func TestRegisterMissingFields(t *testing.T) {
	fields := []struct {
		name   string
		mutate func(*Candidate)
	}{
		{"name", func(c *Candidate) { c.Name = "" }},
		{"email", func(c *Candidate) { c.Email = "  " }},
		{"phone", func(c *Candidate) { c.Phone = "" }},
		{"school", func(c *Candidate) { c.School = "" }},
		{"group", func(c *Candidate) { c.Group = "" }},
	}

	for _, tc := range fields {
		t.Run(tc.name, func(t *testing.T) {
			store := storage.NewMemoryStore()
			verifier := &stubVerifier{ok: true}
			svc := newService(store, verifier, testConfig())

			c := validCandidate()
			tc.mutate(&c)

			err := svc.Register(context.Background(), c)
			var rej *Rejection
			require.ErrorAs(t, err, &rej)
			assert.Equal(t, "Please fill in all required fields", rej.Message)
			assert.Zero(t, store.Len(), "no row may be appended")
			assert.Zero(t, verifier.calls, "missing fields fail before the captcha call")
		})
	}
}

func TestRegisterInvalidEmailRejectedBeforeStoreAccess(t *testing.T) {
	bad := []string{
		"plainaddress",
		"no-at-sign.com",
		"missing@dot",
		"two words@example.com",
		"trailing@example.com extra",
		"@example.com",
		"user@",
	}
	for _, email := range bad {
		t.Run(email, func(t *testing.T) {
			store := storage.NewMemoryStore()
			// A store failure would turn the rejection into an internal
			// error; leaving it armed proves the store is never touched.
			store.ListErr = errors.New("store must not be read")
			svc := newService(store, &stubVerifier{ok: true}, testConfig())

			c := validCandidate()
			c.Email = email

			err := svc.Register(context.Background(), c)
			var rej *Rejection
			require.ErrorAs(t, err, &rej)
			assert.Equal(t, "email", rej.Field)
		})
	}
}

func TestRegisterInvalidPhone(t *testing.T) {
	bad := []string{
		"123456789",    // 9 digits
		"012345678901", // 12 digits
		"01234abc89",   // letters
		"0123 456 78x", // trailing letter
		"+84123456789", // plus sign survives normalization
	}
	for _, phone := range bad {
		t.Run(phone, func(t *testing.T) {
			svc := newService(storage.NewMemoryStore(), &stubVerifier{ok: true}, testConfig())

			c := validCandidate()
			c.Phone = phone

			err := svc.Register(context.Background(), c)
			var rej *Rejection
			require.ErrorAs(t, err, &rej)
			assert.Equal(t, "phone", rej.Field)
		})
	}
}

func TestRegisterAcceptsFormattedPhones(t *testing.T) {
	for _, phone := range []string{"0123456789", "0123-456-789", "0123 456 7890"} {
		t.Run(phone, func(t *testing.T) {
			svc := newService(storage.NewMemoryStore(), &stubVerifier{ok: true}, testConfig())
			c := validCandidate()
			c.Phone = phone
			assert.NoError(t, svc.Register(context.Background(), c))
		})
	}
}

func TestRegisterUnknownGroup(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := newService(store, &stubVerifier{ok: true}, testConfig())

	c := validCandidate()
	c.Group = "C"

	err := svc.Register(context.Background(), c)
	var rej *Rejection
	require.ErrorAs(t, err, &rej)
	assert.Equal(t, "group", rej.Field)
	assert.Zero(t, store.Len())
}

func TestRegisterCaptcha(t *testing.T) {
	t.Run("verifier says no", func(t *testing.T) {
		store := storage.NewMemoryStore()
		svc := newService(store, &stubVerifier{ok: false}, testConfig())

		err := svc.Register(context.Background(), validCandidate())
		var rej *Rejection
		require.ErrorAs(t, err, &rej)
		assert.Equal(t, "Captcha verification failed, please try again", rej.Message)
		assert.Zero(t, store.Len())
	})

	t.Run("token required when secret configured", func(t *testing.T) {
		cfg := testConfig()
		cfg.RecaptchaSecretKey = "secret"
		verifier := &stubVerifier{ok: true}
		svc := newService(storage.NewMemoryStore(), verifier, cfg)

		err := svc.Register(context.Background(), validCandidate()) // no token
		var rej *Rejection
		require.ErrorAs(t, err, &rej)
		assert.Zero(t, verifier.calls)
	})

	t.Run("verifier outage is internal", func(t *testing.T) {
		svc := newService(storage.NewMemoryStore(), &stubVerifier{err: errors.New("siteverify down")}, testConfig())

		err := svc.Register(context.Background(), validCandidate())
		require.Error(t, err)
		var rej *Rejection
		assert.False(t, errors.As(err, &rej), "an outage is not a validation rejection")
	})

	t.Run("fresh check per attempt", func(t *testing.T) {
		verifier := &stubVerifier{ok: true}
		svc := newService(storage.NewMemoryStore(), verifier, testConfig())

		c1 := validCandidate()
		c2 := validCandidate()
		c2.Email = "binh@example.com"
		c2.Phone = "0987654321"
		require.NoError(t, svc.Register(context.Background(), c1))
		require.NoError(t, svc.Register(context.Background(), c2))
		assert.Equal(t, 2, verifier.calls)
	})
}

func TestRegisterDuplicateEmailCaseInsensitive(t *testing.T) {
	store := storage.NewMemoryStore(models.Registration{
		Name: "First", Email: "A@b.com", Phone: "0123456789", School: "X", Group: "A",
	})
	svc := newService(store, &stubVerifier{ok: true}, testConfig())

	c := validCandidate()
	c.Email = "a@B.com"
	c.Phone = "0987654321"

	err := svc.Register(context.Background(), c)
	var rej *Rejection
	require.ErrorAs(t, err, &rej)
	assert.Equal(t, "email", rej.Field)
	assert.Equal(t, 1, store.Len())
}

func TestRegisterDuplicatePhoneIgnoresFormatting(t *testing.T) {
	store := storage.NewMemoryStore(models.Registration{
		Name: "First", Email: "first@example.com", Phone: "0123-456-789", School: "X", Group: "A",
	})
	svc := newService(store, &stubVerifier{ok: true}, testConfig())

	c := validCandidate()
	c.Email = "second@example.com"
	c.Phone = "0123456789"

	err := svc.Register(context.Background(), c)
	var rej *Rejection
	require.ErrorAs(t, err, &rej)
	assert.Equal(t, "phone", rej.Field)
	assert.Equal(t, 1, store.Len())
}

func TestRegisterCapacityBoundary(t *testing.T) {
	// Capacity 2; one registrant in A means the next succeeds and the
	// one after that is rejected.
	store := storage.NewMemoryStore(models.Registration{
		Name: "First", Email: "first@example.com", Phone: "0000000001", School: "X", Group: "A",
	})
	cfg := testConfig()
	svc := newService(store, &stubVerifier{ok: true}, cfg)

	second := validCandidate()
	second.Email = "second@example.com"
	second.Phone = "0000000002"
	require.NoError(t, svc.Register(context.Background(), second))
	assert.Equal(t, 2, store.Len())

	third := validCandidate()
	third.Email = "third@example.com"
	third.Phone = "0000000003"
	err := svc.Register(context.Background(), third)
	var rej *Rejection
	require.ErrorAs(t, err, &rej)
	assert.Equal(t, "group", rej.Field)
	assert.Contains(t, rej.Message, "full")
	assert.Equal(t, 2, store.Len())
}

func TestRegisterEndToEndScenario(t *testing.T) {
	// Groups A and B, capacity 2, empty store: two distinct students
	// fill A, the third A registration is rejected with a capacity
	// message, B still accepts.
	store := storage.NewMemoryStore()
	svc := newService(store, &stubVerifier{ok: true}, testConfig())
	ctx := context.Background()

	for i, email := range []string{"s1@example.com", "s2@example.com"} {
		c := validCandidate()
		c.Email = email
		c.Phone = "012345678" + string(rune('1'+i))
		require.NoError(t, svc.Register(ctx, c))
	}

	blocked := validCandidate()
	blocked.Email = "s3@example.com"
	blocked.Phone = "0123456793"
	err := svc.Register(ctx, blocked)
	var rej *Rejection
	require.ErrorAs(t, err, &rej)
	assert.Contains(t, rej.Message, "full")

	blocked.Group = "B"
	require.NoError(t, svc.Register(ctx, blocked))
	assert.Equal(t, 3, store.Len())
}

func TestRegisterStoreOutageIsInternal(t *testing.T) {
	store := storage.NewMemoryStore()
	store.ListErr = errors.New("sheets unreachable")
	svc := newService(store, &stubVerifier{ok: true}, testConfig())

	err := svc.Register(context.Background(), validCandidate())
	require.Error(t, err)
	var rej *Rejection
	assert.False(t, errors.As(err, &rej))
}
