package main

import (
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
)

// 生成 bcrypt 密码哈希的小工具，方便往测试库里手工插用户
// 用法: go run ./cmd/gen_password.go [明文密码]
func main() {
	plainPassword := "123456"
	if len(os.Args) > 1 {
		plainPassword = os.Args[1]
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(plainPassword), bcrypt.DefaultCost)
	if err != nil {
		fmt.Printf("加密失败: %v\n", err)
		return
	}

	fmt.Printf("明文密码: %s\n", plainPassword)
	fmt.Printf("加密后的密码: %s\n", string(hashedPassword))
	fmt.Println("\n将加密后的密码复制到数据库中即可")
}
