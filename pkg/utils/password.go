package utils

import "golang.org/x/crypto/bcrypt"

// bcrypt 自带盐；超过 72 字节的口令 bcrypt 会报错，错误交给调用方
func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func CheckPassword(pw, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(pw)) == nil
}
