package messaging

// OrdersCreatedSubject is published once per successfully persisted order.
const OrdersCreatedSubject = "orders.created"
