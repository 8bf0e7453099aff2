package service

import "math"

// MinorUnits 将金额转换为整数最小货币单位（分）
// 对 float64 乘积四舍五入（远离零），跨平台确定：19.995 的二进制值
// 略大于 19.995，乘 100 后四舍五入为 2000
func MinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
