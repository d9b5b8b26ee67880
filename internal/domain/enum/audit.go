package enum

// AuditAction identifies what kind of event an audit log entry records
type AuditAction string

const (
	AuditProductCreate   AuditAction = "PRODUCT_CREATE"
	AuditProductUpdate   AuditAction = "PRODUCT_UPDATE"
	AuditProductDelete   AuditAction = "PRODUCT_DELETE"
	AuditTableChange     AuditAction = "TABLE_CHANGE"
	AuditCategoryCreate  AuditAction = "CATEGORY_CREATE"
	AuditCategoryUpdate  AuditAction = "CATEGORY_UPDATE"
	AuditCategoryDelete  AuditAction = "CATEGORY_DELETE"
	AuditUnitCreate      AuditAction = "UNIT_CREATE"
	AuditUnitUpdate      AuditAction = "UNIT_UPDATE"
	AuditUnitDelete      AuditAction = "UNIT_DELETE"
	AuditSaleVoid        AuditAction = "SALE_VOID"
	AuditShiftStart      AuditAction = "SHIFT_START"
	AuditShiftEnd        AuditAction = "SHIFT_END"
	AuditSessionStart    AuditAction = "SESSION_START"
	AuditSessionStop     AuditAction = "SESSION_STOP"
	AuditPricelistChange AuditAction = "PRICELIST_CHANGE"
)
