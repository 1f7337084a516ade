package usecase_test

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"testing"

	"mancarijo/internal/domain"
	"mancarijo/internal/repository/session"
	"mancarijo/internal/usecase"
	"mancarijo/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPictureStore struct {
	mock.Mock
}

func (m *MockPictureStore) Store(ctx context.Context, userID string, jpeg []byte) (string, error) {
	args := m.Called(ctx, userID, jpeg)
	return args.String(0), args.Error(1)
}

func newSessions() domain.SessionUsecase {
	return usecase.NewSessionUsecase(session.NewMemoryTier("ephemeral"), session.NewMemoryTier("durable"), nil)
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestProfile(t *testing.T) {
	ctx := context.Background()
	place := "Padang"

	newUsers := func() *fakeUsers {
		return newFakeUsers(
			domain.User{ID: "s1", Username: "budi", Name: "Budi", Role: domain.RoleJobSeeker, BirthPlace: &place,
				Experiences: []domain.Experience{{CompanyName: "PT Maju", Rating: 5}, {CompanyName: "CV Jaya", Rating: 4}}},
			domain.User{ID: "p1", Username: "maju", Name: "PT Maju", Role: domain.RoleJobProvider},
		)
	}

	t.Run("Should render a seeker profile", func(t *testing.T) {
		profile, err := usecase.NewProfileUsecase(newUsers(), new(MockPictureStore), newSessions(), 256).GetProfile(ctx, "s1")
		require.NoError(t, err)
		assert.Equal(t, 5, profile.Rating)
		assert.Equal(t, "Padang", profile.BirthPlace)
		require.Len(t, profile.Experiences, 2)
		assert.Equal(t, "PT Maju", profile.Experiences[0].CompanyName)
	})

	t.Run("Should return not found for an unknown user", func(t *testing.T) {
		_, err := usecase.NewProfileUsecase(newUsers(), new(MockPictureStore), newSessions(), 256).GetProfile(ctx, "nobody")
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	})

	t.Run("Should compress and store an uploaded picture", func(t *testing.T) {
		users := newUsers()
		pictures := new(MockPictureStore)
		pictures.On("Store", mock.Anything, "s1", mock.MatchedBy(func(b []byte) bool {
			cfg, format, err := image.DecodeConfig(bytes.NewReader(b))
			return err == nil && format == "jpeg" && cfg.Width == 64 && cfg.Height == 32
		})).Return("https://cdn.example.com/s1.jpg", nil).Once()

		profile, err := usecase.NewProfileUsecase(users, pictures, newSessions(), 64).UpdateProfile(ctx, seekerSession("s1"), domain.ProfileUpdate{
			Username:             "budi2",
			Password:             "rahasia",
			PasswordConfirmation: "rahasia",
			Name:                 "Budi Santoso",
			BirthPlace:           "Bukittinggi",
			BirthDate:            "1999-01-02",
			LastEducation:        "SMA",
			ProfilePicture:       pngBytes(t, 128, 64),
		})
		require.NoError(t, err)
		pictures.AssertExpectations(t)

		assert.Equal(t, "Budi Santoso", profile.Name)
		assert.Equal(t, "https://cdn.example.com/s1.jpg", profile.ProfilePicture)
		assert.Equal(t, "Bukittinggi", profile.BirthPlace)

		stored := users.get("s1")
		assert.Equal(t, "budi2", stored.Username)
		assert.Len(t, stored.Experiences, 2)
		var password string
		require.NoError(t, json.Unmarshal(stored.Extras["kataSandi"], &password))
		assert.Equal(t, "rahasia", password)
	})

	t.Run("Should carry a new username into the signed-in session", func(t *testing.T) {
		users := newUsers()
		sessions := newSessions()
		current := seekerSession("s1")
		_, err := sessions.SignIn(ctx, current.Token, *current.Identity, domain.PersistenceDurable)
		require.NoError(t, err)

		_, err = usecase.NewProfileUsecase(users, new(MockPictureStore), sessions, 64).UpdateProfile(ctx, current, domain.ProfileUpdate{
			Username:             "budi_baru",
			Password:             "rahasia",
			PasswordConfirmation: "rahasia",
			Name:                 "Budi",
			BirthPlace:           "Padang",
			BirthDate:            "1999-01-02",
			LastEducation:        "SMA",
		})
		require.NoError(t, err)

		refreshed := sessions.Current(ctx, current.Token)
		require.True(t, refreshed.SignedIn())
		assert.Equal(t, "budi_baru", refreshed.Identity.Username)
		assert.Equal(t, "s1", refreshed.UserID())
	})

	t.Run("Should ignore seeker fields for a provider", func(t *testing.T) {
		users := newUsers()
		_, err := usecase.NewProfileUsecase(users, new(MockPictureStore), newSessions(), 64).UpdateProfile(ctx, providerSession("p1"), domain.ProfileUpdate{
			Username:             "maju",
			Password:             "x",
			PasswordConfirmation: "x",
			Name:                 "PT Maju Jaya",
			BirthPlace:           "Padang",
		})
		require.NoError(t, err)
		assert.Nil(t, users.get("p1").BirthPlace)
		assert.Equal(t, "PT Maju Jaya", users.get("p1").Name)
	})

	t.Run("Should reject a file that is not an image", func(t *testing.T) {
		users := newUsers()
		_, err := usecase.NewProfileUsecase(users, new(MockPictureStore), newSessions(), 64).UpdateProfile(ctx, seekerSession("s1"), domain.ProfileUpdate{
			Username: "budi", Password: "x", PasswordConfirmation: "x", Name: "Budi",
			ProfilePicture: []byte("not an image"),
		})
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
		assert.Equal(t, 0, users.writes)
	})

	t.Run("Should reject a mismatched confirmation", func(t *testing.T) {
		_, err := usecase.NewProfileUsecase(newUsers(), new(MockPictureStore), newSessions(), 64).UpdateProfile(ctx, seekerSession("s1"), domain.ProfileUpdate{
			Password: "a", PasswordConfirmation: "b",
		})
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	})
}
