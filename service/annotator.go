package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/gorp.v2"

	C "github.com/shivesh2334-ai/ECG-LEVEL-4/constant"
	"github.com/shivesh2334-ai/ECG-LEVEL-4/model"
	"github.com/shivesh2334-ai/ECG-LEVEL-4/resource/rds"
)

type AnnotatorService struct {
	*Service
	DB *gorp.DbMap
}

type AnnotatorTxService struct {
	*Service
	DB *gorp.Transaction
}

// ユーザー名とパスワードによる認証を行う。
func (s *AnnotatorService) Login(username string, password string) (*model.Annotator, error) {
	r, e := rds.FetchAnnotatorByUsername(s.DB, username)

	if e != nil {
		return nil, C.DB_OPERATION_ERROR(e)
	}

	if r == nil || bcrypt.CompareHashAndPassword([]byte(r.Password), []byte(password)) != nil {
		return nil, C.NewUnauthorizedError(
			"unauthorized",
			"Username or password is not correct",
			map[string]interface{}{},
		)
	}

	return r, nil
}

// トークン認証を行う。
func (s *AnnotatorService) Authenticate(authId string, version string) (*model.Annotator, error) {
	if r, e := rds.FetchAnnotatorByUsername(s.DB, authId); e != nil {
		return nil, C.DB_OPERATION_ERROR(e)
	} else if r == nil || r.TokenVersion != version {
		return nil, C.NewUnauthorizedError(
			"unauthorized",
			"Your token is not valid",
			map[string]interface{}{},
		)
	} else {
		return r, nil
	}
}

// ユーザー名からアノテーターを取得する。
func (s *AnnotatorService) FetchByUsername(username string) (*model.Annotator, error) {
	if r, e := rds.FetchAnnotatorByUsername(s.DB, username); e != nil {
		return nil, C.DB_OPERATION_ERROR(e)
	} else if r == nil {
		return nil, C.NewNotFoundError(
			"annotator_not_found",
			fmt.Sprintf("Annotator %s is not found", username),
			map[string]interface{}{},
		)
	} else {
		return r, nil
	}
}

// ユーザーを登録する。登録後の役割と病院名は以降のアノテーションのスナップショット元となる。
func (s *AnnotatorTxService) Register(
	username string,
	email string,
	password string,
	role C.Role,
	hospitalName string,
) (*model.Annotator, error) {
	if !C.IsValidRole(role) {
		return nil, C.INVALID_ROLE(string(role))
	}

	if be, e := rds.ExistsAnnotator(s.DB, username, email); e != nil {
		return nil, C.DB_OPERATION_ERROR(e)
	} else if be {
		return nil, C.NewBadRequestError(
			"username_already_taken",
			fmt.Sprintf("Username %s or email %s is already taken", username, email),
			map[string]interface{}{},
		)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	if err != nil {
		return nil, C.NewInternalServerError(
			"password_hash_failed",
			"Failed to hash the password",
			map[string]interface{}{},
		)
	}

	now := time.Now()

	annotator := &model.Annotator{
		Uuid:         uuid.NewString(),
		Username:     username,
		Email:        email,
		Password:     string(hash),
		Role:         role,
		HospitalName: hospitalName,
		TokenVersion: uuid.NewString(),
		CreatedAt:    now,
		ModifiedAt:   now,
	}

	if e := s.DB.Insert(annotator); e != nil {
		return nil, C.DB_OPERATION_ERROR(e)
	}

	return annotator, nil
}

// トークンバージョンを更新する。発行済みトークンは全て無効となる。
func (s *AnnotatorTxService) UpdateVersion(id int) error {
	now := time.Now()

	if version, e := uuid.NewRandom(); e != nil {
		return C.NewInternalServerError(
			"version_generation_failed",
			"Failed to generate new version of your token",
			map[string]interface{}{},
		)
	} else if e := rds.UpdateAnnotatorTokenVersion(s.DB, id, version.String(), now); e != nil {
		return C.DB_OPERATION_ERROR(e)
	} else {
		return nil
	}
}
