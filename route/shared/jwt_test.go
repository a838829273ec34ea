package shared

import (
	"os"
	"testing"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"

	"github.com/shivesh2334-ai/ECG-LEVEL-4/config"
	"github.com/shivesh2334-ai/ECG-LEVEL-4/lib"
)

func Test_CreateTokenWithMapClaims(t *testing.T) {
	os.Setenv("SERVER_ENV", "test")
	config.SetupAll()

	claims := map[string]interface{}{
		"uuid": "test-uuid",
		"scopes": []string{
			"annotation:read",
		},
	}

	token := CreateTokenWithMapClaims(claims)
	assert.Less(t, 0, len(token))
}

func Test_CreateTokenWithStandardClaims(t *testing.T) {
	os.Setenv("SERVER_ENV", "test")
	config.SetupAll()

	token := CreateTokenWithStandardClaims(`uuid2`, "")
	assert.Less(t, 0, len(token))
}

// ログインで発行したトークンのsubjectがそのまま認証コールバックへ届くこと。
// subjectはユーザー名であり、アノテーターの検索キーと一致しなければならない。
func Test_AuthenticateTokenSubject(t *testing.T) {
	os.Setenv("SERVER_ENV", "test")
	config.SetupAll()

	signed := CreateTokenWithStandardClaims("alice", "version-1")

	token, err := jwt.Parse(signed, func(token *jwt.Token) (interface{}, error) {
		return []byte(lib.GetSecret()), nil
	})
	assert.NoError(t, err)

	authId := ""
	version := ""

	_, err = lib.Authenticate(token, func(id string, ver string) (interface{}, error) {
		authId = id
		version = ver
		return nil, nil
	})

	assert.NoError(t, err)
	assert.Equal(t, "alice", authId)
	assert.Equal(t, "version-1", version)
}
