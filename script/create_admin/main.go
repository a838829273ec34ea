package main

import (
	"flag"
	"fmt"
	"log"

	"gopkg.in/gorp.v2"

	C "github.com/shivesh2334-ai/ECG-LEVEL-4/constant"
	"github.com/shivesh2334-ai/ECG-LEVEL-4/config"
	"github.com/shivesh2334-ai/ECG-LEVEL-4/lib"
	"github.com/shivesh2334-ai/ECG-LEVEL-4/route/shared"
	S "github.com/shivesh2334-ai/ECG-LEVEL-4/service"
)

func createAdmin(tx *gorp.Transaction, username string, email string, password string) (string, error) {
	service := &S.AnnotatorTxService{Service: nil, DB: tx}

	admin, err := service.Register(username, email, password, C.RoleAdmin, "")

	if err != nil {
		return "", err
	}

	return shared.CreateTokenWithStandardClaims(admin.Username, admin.TokenVersion), nil
}

func main() {
	config.SetupAll()

	// コマンドライン引数
	flag.Parse()
	args := flag.Args()

	if len(args) != 3 {
		log.Fatal("usage: go run main.go [username] [email] [password]")
	}

	username := args[0]
	email := args[1]
	password := args[2]

	// 管理者作成
	tx, err := lib.GetDB(lib.WriteDBKey).Begin()

	if err != nil {
		log.Fatalf("Failed to open transaction: %v", err)
	}

	status := true

	defer func() {
		if e := recover(); e != nil {
			log.Printf("Rollback database due to unhandled exception: %v", e)
			tx.Rollback()
		} else if !status {
			tx.Rollback()
		} else {
			tx.Commit()
		}
	}()

	if token, e := createAdmin(tx, username, email, password); e != nil {
		log.Printf("Failed to create administrator: %v", e)
		status = false
	} else {
		fmt.Println("OK")
		fmt.Println(token)
	}
}
