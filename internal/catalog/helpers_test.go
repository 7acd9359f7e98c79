package catalog

const (
	productA = "11111111-1111-4111-8111-111111111111"
	productB = "22222222-2222-4222-8222-222222222222"
	productC = "33333333-3333-4333-8333-333333333333"

	imageOne = "aaaaaaaa-aaaa-4aaa-8aaa-aaaaaaaaaaa1"
	imageTwo = "aaaaaaaa-aaaa-4aaa-8aaa-aaaaaaaaaaa2"
	imageSix = "aaaaaaaa-aaaa-4aaa-8aaa-aaaaaaaaaaa6"
)

func productRow(id, title string, price any) Row {
	return Row{"product_id": id, "title": title, "description": title + " description", "price": price}
}

func commentRow(id, productID, name, email, body string) Row {
	return Row{"comment_id": id, "product_id": productID, "name": name, "email": email, "body": body}
}

func imageRow(id, productID string, main any) Row {
	return Row{"image_id": id, "product_id": productID, "url": "https://cdn.example.com/" + id + ".png", "main": main}
}
