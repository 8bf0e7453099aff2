package service

import (
	"crypto/rand"
	"errors"

	"gorm.io/gorm"

	"github.com/d60-Lab/gin-shop/internal/model"
)

const (
	refCodeLength  = 20
	refCodeCharset = "abcdefghijklmnopqrstuvwxyz0123456789"
)

// newRefCode 生成定长随机参考码（小写字母+数字）
func newRefCode() (string, error) {
	buf := make([]byte, refCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = refCodeCharset[int(b)%len(refCodeCharset)]
	}
	return string(buf), nil
}

// genRefCode 可在测试中替换，用于构造冲突场景
var genRefCode = newRefCode

// uniqueRefCode 在事务内生成未占用的参考码，冲突则重试
func uniqueRefCode(tx *gorm.DB) (string, error) {
	for i := 0; i < 5; i++ {
		code, err := genRefCode()
		if err != nil {
			return "", err
		}
		var cnt int64
		if err := tx.Model(&model.Order{}).Where("ref_code = ?", code).Count(&cnt).Error; err != nil {
			return "", err
		}
		if cnt == 0 {
			return code, nil
		}
	}
	return "", errors.New("failed to allocate unique ref code")
}
