package components

// PositionComponent 实体左上角的屏幕坐标
// 图形宿主以像素为单位，终端宿主以字符格为单位
type PositionComponent struct {
	X float64
	Y float64
}
