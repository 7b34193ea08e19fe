// Package docs registers the OpenAPI description served under /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/bookings": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["bookings"],
                "summary": "Reserve rooms and create a Pending booking",
                "parameters": [
                    {"description": "booking", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateBookingRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.BookingCreatedResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.ErrorBody"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.ErrorBody"}}
                }
            }
        },
        "/payment/order": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["payment"],
                "summary": "Create a gateway order",
                "parameters": [
                    {"description": "amount in paise", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateOrderRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.GatewayOrder"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.ErrorBody"}}
                }
            }
        },
        "/payment/verify": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["payment"],
                "summary": "Verify a checkout receipt and create or confirm the booking",
                "parameters": [
                    {"description": "receipt and booking", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.VerifyPaymentRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.PaymentConfirmedResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.PaymentFailedResponse"}}
                }
            }
        },
        "/hotels": {
            "get": {
                "produces": ["application/json"],
                "tags": ["hotels"],
                "summary": "List hotels, optionally fuzzy-searched with q",
                "parameters": [
                    {"type": "string", "description": "search text", "name": "q", "in": "query"},
                    {"type": "integer", "description": "page", "name": "page", "in": "query"},
                    {"type": "integer", "description": "page size", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.PageBody"}}
                }
            }
        },
        "/admin/bookings/{id}": {
            "delete": {
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Delete a booking and return its rooms",
                "parameters": [
                    {"type": "integer", "description": "booking id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.MessageResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/response.ErrorBody"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.ErrorBody"}}
                }
            }
        }
    },
    "definitions": {
        "dto.CreateBookingRequest": {
            "type": "object",
            "properties": {
                "hotelId": {"type": "integer"},
                "checkIn": {"type": "string"},
                "checkOut": {"type": "string"},
                "roomType": {"type": "string", "enum": ["Single", "Double", "Suite"]},
                "numberOfRooms": {"type": "integer"},
                "numberOfGuests": {"type": "integer"},
                "specialRequests": {"type": "string"},
                "phone": {"type": "string"}
            }
        },
        "dto.BookingResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "hotelId": {"type": "integer"},
                "userId": {"type": "integer"},
                "roomType": {"type": "string"},
                "checkInDate": {"type": "string"},
                "checkOutDate": {"type": "string"},
                "numberOfRooms": {"type": "integer"},
                "guests": {"type": "integer"},
                "phone": {"type": "string"},
                "totalPrice": {"type": "number"},
                "paymentStatus": {"type": "string", "enum": ["Pending", "Paid"]}
            }
        },
        "dto.BookingCreatedResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "booking": {"$ref": "#/definitions/dto.BookingResponse"}
            }
        },
        "dto.CreateOrderRequest": {
            "type": "object",
            "properties": {
                "amount": {"type": "integer"},
                "currency": {"type": "string"}
            }
        },
        "dto.GatewayOrder": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "amount": {"type": "integer"},
                "currency": {"type": "string"},
                "receipt": {"type": "string"},
                "status": {"type": "string"}
            }
        },
        "dto.VerifyPaymentRequest": {
            "type": "object",
            "properties": {
                "razorpay_order_id": {"type": "string"},
                "razorpay_payment_id": {"type": "string"},
                "razorpay_signature": {"type": "string"},
                "bookingId": {"type": "integer"},
                "hotelId": {"type": "integer"},
                "roomType": {"type": "string"},
                "checkInDate": {"type": "string"},
                "checkOutDate": {"type": "string"},
                "numberOfRooms": {"type": "integer"},
                "guests": {"type": "integer"},
                "phone": {"type": "string"}
            }
        },
        "dto.PaymentConfirmedResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "booking": {"$ref": "#/definitions/dto.BookingResponse"}
            }
        },
        "dto.PaymentFailedResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "error": {"type": "string"}
            }
        },
        "dto.MessageResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"}
            }
        },
        "response.ErrorBody": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
            }
        },
        "response.PageBody": {
            "type": "object",
            "properties": {
                "data": {},
                "pagination": {
                    "type": "object",
                    "properties": {
                        "page": {"type": "integer"},
                        "limit": {"type": "integer"},
                        "total": {"type": "integer"}
                    }
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Hotel booking API",
	Description:      "Hotels, bookings and payments.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
