package domain

// FallbackProducts is the catalog used when the remote one cannot be loaded.
// It returns a fresh slice on every call.
func FallbackProducts() []Product {
	return []Product{
		{ID: "1", Name: "Đầm dạ hội lộng lẫy", Category: "dam", Price: 3500000, Image: "images/products/dam-da-hoi.jpg", Description: "Đầm dạ hội dáng dài, chất liệu lụa cao cấp", Stock: 12, Featured: true},
		{ID: "2", Name: "Áo sơ mi lụa trắng", Category: "ao", Price: 850000, Image: "images/products/ao-so-mi-lua.jpg", Description: "Áo sơ mi lụa mềm mại, phù hợp công sở", Stock: 30, Featured: true},
		{ID: "3", Name: "Chân váy xếp ly", Category: "vay", Price: 650000, Image: "images/products/chan-vay-xep-ly.jpg", Description: "Chân váy xếp ly dáng midi", Stock: 25},
		{ID: "4", Name: "Quần âu ống suông", Category: "quan", Price: 720000, Image: "images/products/quan-au.jpg", Description: "Quần âu ống suông thanh lịch", Stock: 18},
		{ID: "5", Name: "Áo khoác dạ dáng dài", Category: "ao-khoac", Price: 2100000, Image: "images/products/ao-khoac-da.jpg", Description: "Áo khoác dạ ấm áp cho mùa đông", Stock: 8, Featured: true},
		{ID: "6", Name: "Túi xách da mini", Category: "phu-kien", Price: 1250000, Image: "images/products/tui-xach-mini.jpg", Description: "Túi xách da thật kích thước nhỏ gọn", Stock: 15},
		{ID: "7", Name: "Đầm maxi hoa nhí", Category: "dam", Price: 980000, Image: "images/products/dam-maxi.jpg", Description: "Đầm maxi họa tiết hoa nhí dạo phố", Stock: 20},
		{ID: "8", Name: "Áo len cổ lọ", Category: "ao", Price: 590000, Image: "images/products/ao-len.jpg", Description: "Áo len cổ lọ giữ ấm", Stock: 3},
	}
}
