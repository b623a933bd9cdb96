package controllers

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Mhmk1399/complex-dashboard-sub002/config"
	"github.com/Mhmk1399/complex-dashboard-sub002/models"
)

const defaultMongoTestImage = "docker.io/library/mongo:7.0"

// startMongo runs a throwaway MongoDB container and returns a connected
// client. Skipped when no container runtime is available.
func startMongo(t *testing.T) *mongo.Client {
	t.Helper()

	ctx := context.Background()
	image := os.Getenv("MONGO_TEST_IMAGE")
	if strings.TrimSpace(image) == "" {
		image = defaultMongoTestImage
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        image,
			ExposedPorts: []string{"27017/tcp"},
			WaitingFor: wait.ForListeningPort("27017/tcp").
				WithStartupTimeout(45 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Skipf("start mongo test container: %v", err)
	}
	t.Cleanup(func() {
		_ = container.Terminate(ctx)
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	mappedPort, err := container.MappedPort(ctx, "27017/tcp")
	require.NoError(t, err)

	uri := "mongodb://" + net.JoinHostPort(host, mappedPort.Port())
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = client.Disconnect(context.Background())
	})

	pingCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	require.NoError(t, client.Ping(pingCtx, nil))

	return client
}

// newFlowEnv wires a store-backed client, an SMS gateway stub and the env
// the auth path reads.
func newFlowEnv(t *testing.T) *mongo.Client {
	t.Helper()

	client := startMongo(t)
	t.Setenv("DB_NAME", fmt.Sprintf("dashboard_test_%d", time.Now().UnixNano()))
	t.Setenv("JWT_SECRET", "integration-secret")

	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"status":"success","message":"sent"}`)
	}))
	t.Cleanup(gateway.Close)
	t.Setenv("SMS_API_URL", gateway.URL)

	return client
}

func storedVerification(t *testing.T, client *mongo.Client, phone string) models.PhoneVerification {
	t.Helper()
	var record models.PhoneVerification
	err := config.GetCollection(client, "verifications").
		FindOne(context.Background(), bson.M{"phone": phone}).
		Decode(&record)
	require.NoError(t, err)
	return record
}

func countUsers(t *testing.T, client *mongo.Client, phone string) int64 {
	t.Helper()
	count, err := config.GetCollection(client, "users").
		CountDocuments(context.Background(), bson.M{"phone": phone})
	require.NoError(t, err)
	return count
}

func TestSendConfirmRegisterLoginFlow(t *testing.T) {
	client := newFlowEnv(t)
	vc := NewVerificationController(client)
	ac := NewAuthController(client)
	phone := "09123456789"

	c, rec := newJSONContext(t, http.MethodPost, "/api/verification/send",
		fmt.Sprintf(`{"phone":"%s"}`, phone))
	require.NoError(t, vc.SendCode(c))
	requireStatus(t, rec, http.StatusOK)

	record := storedVerification(t, client, phone)
	require.False(t, record.Verified)
	require.Len(t, record.Code, 6)

	c, rec = newJSONContext(t, http.MethodPost, "/api/verification/confirm",
		fmt.Sprintf(`{"phone":"%s","code":"%s"}`, phone, record.Code))
	require.NoError(t, vc.ConfirmCode(c))
	requireStatus(t, rec, http.StatusOK)
	require.True(t, storedVerification(t, client, phone).Verified)

	registerBody := fmt.Sprintf(`{"phone":"%s","password":"longenough","storeId":"shop1"}`, phone)
	c, rec = newJSONContext(t, http.MethodPost, "/api/auth/register", registerBody)
	require.NoError(t, ac.Register(c))
	resp := requireStatus(t, rec, http.StatusCreated)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.NotEmpty(t, data["token"])
	user, ok := data["user"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "shop1", user["storeId"])
	assert.Equal(t, "owner", user["role"])
	_, leaked := user["password"]
	assert.False(t, leaked)

	// A second register for the same phone must not grow or mutate the store
	c, rec = newJSONContext(t, http.MethodPost, "/api/auth/register",
		fmt.Sprintf(`{"phone":"%s","password":"otherpassword","storeId":"shop2"}`, phone))
	require.NoError(t, ac.Register(c))
	resp = requireStatus(t, rec, http.StatusConflict)
	assert.Equal(t, "User already exists", resp.Message)
	assert.EqualValues(t, 1, countUsers(t, client, phone))

	var stored models.User
	err := config.GetCollection(client, "users").
		FindOne(context.Background(), bson.M{"phone": phone}).
		Decode(&stored)
	require.NoError(t, err)
	assert.Equal(t, "shop1", stored.StoreID)

	c, rec = newJSONContext(t, http.MethodPost, "/api/auth/login",
		fmt.Sprintf(`{"phone":"%s","password":"longenough"}`, phone))
	require.NoError(t, ac.Login(c))
	resp = requireStatus(t, rec, http.StatusOK)
	data, ok = resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.NotEmpty(t, data["token"])
}

func TestRegisterUnverifiedPhone(t *testing.T) {
	client := newFlowEnv(t)
	ac := NewAuthController(client)

	c, rec := newJSONContext(t, http.MethodPost, "/api/auth/register",
		`{"phone":"09123456789","password":"longenough","storeId":"shop1"}`)
	require.NoError(t, ac.Register(c))
	resp := requireStatus(t, rec, http.StatusUnauthorized)
	assert.Equal(t, "Phone number not verified", resp.Message)
	assert.EqualValues(t, 0, countUsers(t, client, "09123456789"))
}

func TestLoginWrongPasswordMatchesUnknownPhone(t *testing.T) {
	client := newFlowEnv(t)
	vc := NewVerificationController(client)
	ac := NewAuthController(client)
	phone := "09123456789"

	c, rec := newJSONContext(t, http.MethodPost, "/api/verification/send",
		fmt.Sprintf(`{"phone":"%s"}`, phone))
	require.NoError(t, vc.SendCode(c))
	requireStatus(t, rec, http.StatusOK)
	code := storedVerification(t, client, phone).Code

	c, rec = newJSONContext(t, http.MethodPost, "/api/verification/confirm",
		fmt.Sprintf(`{"phone":"%s","code":"%s"}`, phone, code))
	require.NoError(t, vc.ConfirmCode(c))
	requireStatus(t, rec, http.StatusOK)

	c, rec = newJSONContext(t, http.MethodPost, "/api/auth/register",
		fmt.Sprintf(`{"phone":"%s","password":"longenough","storeId":"shop1"}`, phone))
	require.NoError(t, ac.Register(c))
	requireStatus(t, rec, http.StatusCreated)

	c, rec = newJSONContext(t, http.MethodPost, "/api/auth/login",
		fmt.Sprintf(`{"phone":"%s","password":"wrongpassword"}`, phone))
	require.NoError(t, ac.Login(c))
	wrongPassword := requireStatus(t, rec, http.StatusUnauthorized)

	c, rec = newJSONContext(t, http.MethodPost, "/api/auth/login",
		`{"phone":"09999999999","password":"wrongpassword"}`)
	require.NoError(t, ac.Login(c))
	unknownPhone := requireStatus(t, rec, http.StatusUnauthorized)

	// Account enumeration: both failures look the same to the caller
	assert.Equal(t, wrongPassword.Message, unknownPhone.Message)
	assert.Equal(t, "Invalid credentials", wrongPassword.Message)
}

func TestConfirmWrongCodeMatchesExpiredCode(t *testing.T) {
	client := newFlowEnv(t)
	vc := NewVerificationController(client)
	ctx := context.Background()
	coll := config.GetCollection(client, "verifications")

	_, err := coll.InsertOne(ctx, models.PhoneVerification{
		Phone:     "09111111111",
		Code:      "111111",
		ExpiresAt: time.Now().Add(time.Minute),
		Verified:  false,
	})
	require.NoError(t, err)
	_, err = coll.InsertOne(ctx, models.PhoneVerification{
		Phone:     "09222222222",
		Code:      "222222",
		ExpiresAt: time.Now().Add(-time.Minute),
		Verified:  false,
	})
	require.NoError(t, err)

	// Wrong code against a live record
	c, rec := newJSONContext(t, http.MethodPost, "/api/verification/confirm",
		`{"phone":"09111111111","code":"999999"}`)
	require.NoError(t, vc.ConfirmCode(c))
	wrongCode := requireStatus(t, rec, http.StatusBadRequest)

	// Right code against an expired record
	c, rec = newJSONContext(t, http.MethodPost, "/api/verification/confirm",
		`{"phone":"09222222222","code":"222222"}`)
	require.NoError(t, vc.ConfirmCode(c))
	expiredCode := requireStatus(t, rec, http.StatusBadRequest)

	assert.Equal(t, wrongCode.Message, expiredCode.Message)
	assert.Equal(t, "Invalid or expired code", wrongCode.Message)

	// Neither attempt may flip the verified flag
	assert.False(t, storedVerification(t, client, "09111111111").Verified)
	assert.False(t, storedVerification(t, client, "09222222222").Verified)
}

func TestSendCodeGatewayFailure(t *testing.T) {
	client := startMongo(t)
	t.Setenv("DB_NAME", fmt.Sprintf("dashboard_test_%d", time.Now().UnixNano()))

	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(gateway.Close)
	t.Setenv("SMS_API_URL", gateway.URL)

	vc := NewVerificationController(client)
	c, rec := newJSONContext(t, http.MethodPost, "/api/verification/send",
		`{"phone":"09123456789"}`)
	require.NoError(t, vc.SendCode(c))
	resp := requireStatus(t, rec, http.StatusBadGateway)
	assert.Equal(t, "Failed to send verification code", resp.Message)

	// The record is written before dispatch and stays for the next send
	record := storedVerification(t, client, "09123456789")
	assert.False(t, record.Verified)
	assert.Len(t, record.Code, 6)
}
