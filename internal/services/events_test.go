package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-blog/internal/models"
	"github.com/sbilibin2017/gw-blog/internal/services"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventPublishing(t *testing.T) {
	ctx := context.Background()
	authorID := uuid.New()
	postID := uuid.New()
	stored := &models.PostDB{PostID: postID, AuthorID: authorID, AuthorUsername: "alice"}

	t.Run("post.created is keyed by event id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		writer := services.NewMockPostWriter(ctrl)
		kafkaWriter := services.NewMockKafkaWriter(ctrl)
		svc := services.NewPostService(services.NewMockPostReader(ctrl), writer, kafkaWriter)

		writer.EXPECT().Save(gomock.Any(), gomock.Any()).Return(stored, nil)

		var published kafka.Message
		kafkaWriter.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, msgs ...kafka.Message) error {
				require.Len(t, msgs, 1)
				published = msgs[0]
				return nil
			})

		_, err := svc.Create(ctx, authorID, validTitle, validDescription, validContent)
		require.NoError(t, err)

		var event models.Event
		require.NoError(t, json.Unmarshal(published.Value, &event))
		assert.Equal(t, models.EventPostCreated, event.Type)
		assert.Equal(t, postID.String(), event.SubjectID)
		assert.Equal(t, authorID.String(), event.ActorID)
		assert.Equal(t, event.EventID, string(published.Key))
		assert.NotZero(t, event.Timestamp)
	})

	t.Run("publish failure does not fail the request", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		writer := services.NewMockPostWriter(ctrl)
		kafkaWriter := services.NewMockKafkaWriter(ctrl)
		svc := services.NewPostService(services.NewMockPostReader(ctrl), writer, kafkaWriter)

		writer.EXPECT().GetForUpdate(gomock.Any(), postID).Return(stored, nil)
		writer.EXPECT().Delete(gomock.Any(), postID).Return(stored, nil)
		kafkaWriter.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

		post, err := svc.Delete(ctx, authorID, postID.String())
		require.NoError(t, err)
		assert.Equal(t, postID, post.ID)
	})

	t.Run("account.registered", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		accounts := services.NewMockAccountWriter(ctrl)
		tokens := services.NewMockTokenGenerator(ctrl)
		hasher := services.NewMockPasswordHasher(ctrl)
		kafkaWriter := services.NewMockKafkaWriter(ctrl)
		svc := services.NewAuthService(services.NewMockAccountReader(ctrl), accounts, nil, tokens, hasher, kafkaWriter)

		hasher.EXPECT().Hash(gomock.Any(), gomock.Any()).Return("digest", nil)
		accounts.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
		tokens.EXPECT().Generate(gomock.Any(), gomock.Any()).Return("t", nil)

		var event models.Event
		kafkaWriter.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, msgs ...kafka.Message) error {
				return json.Unmarshal(msgs[0].Value, &event)
			})

		result, err := svc.Register(ctx, "alice", "a@x.com", "Passw0rd!", "Passw0rd!")
		require.NoError(t, err)
		assert.Equal(t, models.EventAccountRegistered, event.Type)
		assert.Equal(t, result.User.ID.String(), event.SubjectID)
	})
}
